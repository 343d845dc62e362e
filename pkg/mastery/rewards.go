package mastery

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// Reward is a mastery level reward. The concrete types are Coins, Cosmetic,
// Powerup and Title.
type Reward interface {
	Icon() string
	String() string
	isReward()
}

// Coins adds to the global score aggregate.
type Coins struct {
	Amount int
}

// Cosmetic unlocks a skin, color or trail. An empty ID in a catalog entry
// means a random pick from the category pool.
type Cosmetic struct {
	Category profile.CosmeticCategory
	ID       string
}

// Powerup unlocks a power-up. An empty ID in a catalog entry means random.
type Powerup struct {
	ID string
}

// Title unlocks a player title.
type Title struct {
	ID   string
	Name string
}

func (Coins) isReward()    {}
func (Cosmetic) isReward() {}
func (Powerup) isReward()  {}
func (Title) isReward()    {}

func (Coins) Icon() string   { return "💰" }
func (Powerup) Icon() string { return "⚡" }

func (c Cosmetic) Icon() string {
	switch {
	case c.Category == profile.CategorySkin && c.ID == legendarySkin:
		return "👑"
	case c.Category == profile.CategorySkin:
		return "👨‍💻"
	case c.Category == profile.CategoryColor:
		return "🎨"
	default:
		return "✨"
	}
}

func (t Title) Icon() string {
	if strings.HasSuffix(t.ID, "_grandmaster") {
		return "👑"
	}
	return "🏆"
}

func (c Coins) String() string { return fmt.Sprintf("%d coins", c.Amount) }

func (c Cosmetic) String() string {
	if c.ID == "" {
		return "random " + string(c.Category)
	}
	return string(c.Category) + " " + c.ID
}

func (p Powerup) String() string {
	if p.ID == "" {
		return "random powerup"
	}
	return "powerup " + p.ID
}

func (t Title) String() string { return "title " + t.Name }

const legendarySkin = "legendary"

var (
	skinPool    = []string{"ninja", "wizard", "robot", "superhero", "alien", "pirate", "vampire"}
	colorPool   = []string{"red", "purple", "gold", "pink", "cyan", "orange"}
	trailPool   = []string{"sparkle", "fire", "rainbow", "code"}
	powerupPool = []string{"coffee", "star", "diamond", "battery"}
)

// rewardLevels lists every level that carries a reward, ascending.
var rewardLevels = []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 60, 70, 80, 90, 100}

// RewardFor returns the reward granted on reaching level in mode.
func RewardFor(mode profile.Mode, level int) (Reward, bool) {
	switch level {
	case 5:
		return Coins{Amount: 500}, true
	case 10:
		return Cosmetic{Category: profile.CategorySkin}, true
	case 15:
		return Coins{Amount: 1000}, true
	case 20:
		return Cosmetic{Category: profile.CategoryColor}, true
	case 25:
		return Powerup{}, true
	case 30:
		return Coins{Amount: 2000}, true
	case 35:
		return Cosmetic{Category: profile.CategoryTrail}, true
	case 40:
		return Cosmetic{Category: profile.CategorySkin, ID: legendarySkin}, true
	case 45:
		return Coins{Amount: 3000}, true
	case 50:
		return Title{ID: string(mode) + "_master", Name: string(mode) + " Master"}, true
	case 60:
		return Coins{Amount: 5000}, true
	case 70:
		return Coins{Amount: 7500}, true
	case 80:
		return Coins{Amount: 10000}, true
	case 90:
		return Coins{Amount: 15000}, true
	case 100:
		return Title{ID: string(mode) + "_grandmaster", Name: string(mode) + " Grandmaster"}, true
	}
	return nil, false
}

func cosmeticPool(category profile.CosmeticCategory) []string {
	switch category {
	case profile.CategorySkin:
		return skinPool
	case profile.CategoryColor:
		return colorPool
	default:
		return trailPool
	}
}

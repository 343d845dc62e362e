// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownStat is returned when a stat key does not exist in the schema.
var ErrUnknownStat = errors.New("unknown stat")

// Mode identifies a game mode that owns a block of counters.
type Mode string

const (
	ModeGitSurvivor     Mode = "gitSurvivor"
	ModeCodeDefense     Mode = "codeDefense"
	ModePRRush          Mode = "prRush"
	ModeDevCommander    Mode = "devCommander"
	ModeDebugDungeon    Mode = "debugDungeon"
	ModeRefactorRace    Mode = "refactorRace"
	ModeSprintSurvivor  Mode = "sprintSurvivor"
	ModeBugBounty       Mode = "bugBounty"
	ModeLegacyExcavator Mode = "legacyExcavator"
	ModeBossRush        Mode = "bossRush"
)

// Counter names a single numeric stat.
type Counter string

const (
	// global aggregates
	CounterGamesPlayed     Counter = "gamesPlayed"
	CounterTotalScore      Counter = "totalScore"
	CounterTotalTimePlayed Counter = "totalTimePlayed"

	// per-mode counters
	CounterHighScore       Counter = "highScore"
	CounterEnemiesKilled   Counter = "enemiesKilled"
	CounterHighWave        Counter = "highWave"
	CounterTowersPlaced    Counter = "towersPlaced"
	CounterBestAccuracy    Counter = "bestAccuracy"
	CounterPRsReviewed     Counter = "prsReviewed"
	CounterMaxSprints      Counter = "maxSprints"
	CounterTasksCompleted  Counter = "tasksCompleted"
	CounterBugsFixed       Counter = "bugsFixed"
	CounterTotalRefactors  Counter = "totalRefactors"
	CounterMaxDistance     Counter = "maxDistance"
	CounterLevelsCompleted Counter = "levelsCompleted"
	CounterTotalStars      Counter = "totalStars"
	CounterMaxDepth        Counter = "maxDepth"
	CounterArtifactsFound  Counter = "artifactsFound"
	CounterBossesDefeated  Counter = "bossesDefeated"
)

// legacyTotalTimeKey is the misspelled key written by older saves.
const legacyTotalTimeKey = "totalTimeplayed"

var modeOrder = []Mode{
	ModeGitSurvivor,
	ModeCodeDefense,
	ModePRRush,
	ModeDevCommander,
	ModeDebugDungeon,
	ModeRefactorRace,
	ModeSprintSurvivor,
	ModeBugBounty,
	ModeLegacyExcavator,
	ModeBossRush,
}

var modeCounters = map[Mode][]Counter{
	ModeGitSurvivor:     {CounterHighScore, CounterGamesPlayed, CounterEnemiesKilled},
	ModeCodeDefense:     {CounterHighWave, CounterGamesPlayed, CounterTowersPlaced},
	ModePRRush:          {CounterBestAccuracy, CounterGamesPlayed, CounterPRsReviewed},
	ModeDevCommander:    {CounterMaxSprints, CounterGamesPlayed, CounterTasksCompleted},
	ModeDebugDungeon:    {CounterHighScore, CounterGamesPlayed, CounterBugsFixed},
	ModeRefactorRace:    {CounterHighScore, CounterGamesPlayed, CounterTotalRefactors},
	ModeSprintSurvivor:  {CounterHighScore, CounterGamesPlayed, CounterMaxDistance},
	ModeBugBounty:       {CounterLevelsCompleted, CounterTotalStars},
	ModeLegacyExcavator: {CounterHighScore, CounterGamesPlayed, CounterMaxDepth, CounterArtifactsFound},
	ModeBossRush:        {CounterHighScore, CounterGamesPlayed, CounterBossesDefeated},
}

var globalCounters = []Counter{CounterGamesPlayed, CounterTotalScore, CounterTotalTimePlayed}

// Modes returns every mode in the stat catalog in display order.
func Modes() []Mode {
	out := make([]Mode, len(modeOrder))
	copy(out, modeOrder)
	return out
}

// Valid reports whether the mode is part of the stat catalog.
func (m Mode) Valid() bool {
	_, ok := modeCounters[m]
	return ok
}

// Counters returns the counters tracked for the mode.
func (m Mode) Counters() []Counter {
	counters := modeCounters[m]
	out := make([]Counter, len(counters))
	copy(out, counters)
	return out
}

// HasCounter reports whether the mode tracks the given counter.
func (m Mode) HasCounter(c Counter) bool {
	for _, counter := range modeCounters[m] {
		if counter == c {
			return true
		}
	}
	return false
}

func isGlobalCounter(c Counter) bool {
	for _, counter := range globalCounters {
		if counter == c {
			return true
		}
	}
	return false
}

// StatKey addresses one counter in Stats. Global counters have an empty Mode.
type StatKey struct {
	Mode    Mode
	Counter Counter
}

// Global returns the key of a global aggregate counter.
func Global(c Counter) StatKey {
	return StatKey{Counter: c}
}

// ModeStat returns the key of a per-mode counter.
func ModeStat(m Mode, c Counter) StatKey {
	return StatKey{Mode: m, Counter: c}
}

// String renders the key in dot-path form, e.g. "gitSurvivor.enemiesKilled".
func (k StatKey) String() string {
	if k.Mode == "" {
		return string(k.Counter)
	}
	return string(k.Mode) + "." + string(k.Counter)
}

// Valid reports whether the key exists in the schema.
func (k StatKey) Valid() bool {
	if k.Mode == "" {
		return isGlobalCounter(k.Counter)
	}
	return k.Mode.HasCounter(k.Counter)
}

// ParseStatKey converts a dot path into a StatKey, validating it against the schema.
func ParseStatKey(path string) (StatKey, error) {
	parts := strings.Split(strings.TrimSpace(path), ".")

	var key StatKey
	switch len(parts) {
	case 1:
		key = Global(Counter(parts[0]))
	case 2:
		key = ModeStat(Mode(parts[0]), Counter(parts[1]))
	default:
		return StatKey{}, fmt.Errorf("%w: %q", ErrUnknownStat, path)
	}

	if !key.Valid() {
		return StatKey{}, fmt.Errorf("%w: %q", ErrUnknownStat, path)
	}
	return key, nil
}

// ModeStats holds the counters of one mode.
type ModeStats map[Counter]float64

// Stats is the gameplay counter block of a profile. It serializes as a flat
// object where each mode's counters sit beside the global aggregates.
type Stats struct {
	GamesPlayed     float64
	TotalScore      float64
	TotalTimePlayed float64
	Modes           map[Mode]ModeStats
}

// NewStats returns a zeroed stats block with every mode and counter present.
func NewStats() Stats {
	s := Stats{Modes: make(map[Mode]ModeStats, len(modeOrder))}
	for _, mode := range modeOrder {
		ms := make(ModeStats, len(modeCounters[mode]))
		for _, c := range modeCounters[mode] {
			ms[c] = 0
		}
		s.Modes[mode] = ms
	}
	return s
}

// Get returns the value stored under key.
func (s *Stats) Get(key StatKey) (float64, bool) {
	if !key.Valid() {
		return 0, false
	}
	if key.Mode == "" {
		return *s.global(key.Counter), true
	}
	ms, ok := s.Modes[key.Mode]
	if !ok {
		return 0, true
	}
	return ms[key.Counter], true
}

// Set stores value under key.
func (s *Stats) Set(key StatKey, value float64) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStat, key.String())
	}
	if key.Mode == "" {
		*s.global(key.Counter) = value
		return nil
	}
	if s.Modes == nil {
		s.Modes = make(map[Mode]ModeStats)
	}
	ms, ok := s.Modes[key.Mode]
	if !ok {
		ms = make(ModeStats)
		s.Modes[key.Mode] = ms
	}
	ms[key.Counter] = value
	return nil
}

func (s *Stats) global(c Counter) *float64 {
	switch c {
	case CounterGamesPlayed:
		return &s.GamesPlayed
	case CounterTotalScore:
		return &s.TotalScore
	default:
		return &s.TotalTimePlayed
	}
}

// normalize fills missing modes and counters and clears negative or non-finite values.
func (s *Stats) normalize() {
	s.GamesPlayed = sanitizeCounter(s.GamesPlayed)
	s.TotalScore = sanitizeCounter(s.TotalScore)
	s.TotalTimePlayed = sanitizeCounter(s.TotalTimePlayed)

	if s.Modes == nil {
		s.Modes = make(map[Mode]ModeStats, len(modeOrder))
	}
	for mode := range s.Modes {
		if !mode.Valid() {
			delete(s.Modes, mode)
		}
	}
	for _, mode := range modeOrder {
		ms, ok := s.Modes[mode]
		if !ok || ms == nil {
			ms = make(ModeStats, len(modeCounters[mode]))
			s.Modes[mode] = ms
		}
		for c := range ms {
			if !mode.HasCounter(c) {
				delete(ms, c)
			}
		}
		for _, c := range modeCounters[mode] {
			ms[c] = sanitizeCounter(ms[c])
		}
	}
}

func sanitizeCounter(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func (s *Stats) clone() Stats {
	out := Stats{
		GamesPlayed:     s.GamesPlayed,
		TotalScore:      s.TotalScore,
		TotalTimePlayed: s.TotalTimePlayed,
		Modes:           make(map[Mode]ModeStats, len(s.Modes)),
	}
	for mode, ms := range s.Modes {
		cp := make(ModeStats, len(ms))
		for c, v := range ms {
			cp[c] = v
		}
		out.Modes[mode] = cp
	}
	return out
}

// MarshalJSON writes the flat document shape.
func (s Stats) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(s.Modes)+len(globalCounters))
	doc[string(CounterGamesPlayed)] = s.GamesPlayed
	doc[string(CounterTotalScore)] = s.TotalScore
	doc[string(CounterTotalTimePlayed)] = s.TotalTimePlayed

	for mode, ms := range s.Modes {
		counters := make(map[string]float64, len(ms))
		for c, v := range ms {
			counters[string(c)] = v
		}
		doc[string(mode)] = counters
	}

	return json.Marshal(doc)
}

// UnmarshalJSON reads the flat document shape. Values already present on the
// receiver are kept for keys missing from the input, and entries that are not
// numbers are ignored rather than failing the whole document.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode stats: %w", err)
	}
	if raw == nil {
		return nil
	}
	if s.Modes == nil {
		s.Modes = make(map[Mode]ModeStats)
	}

	_, hasTotalTime := raw[string(CounterTotalTimePlayed)]

	for key, value := range raw {
		switch {
		case key == legacyTotalTimeKey:
			if !hasTotalTime {
				if v, ok := decodeNumber(value); ok {
					s.TotalTimePlayed = v
				}
			}
		case isGlobalCounter(Counter(key)):
			if v, ok := decodeNumber(value); ok {
				*s.global(Counter(key)) = v
			}
		case Mode(key).Valid():
			var counters map[string]json.RawMessage
			if err := json.Unmarshal(value, &counters); err != nil {
				continue
			}
			ms, ok := s.Modes[Mode(key)]
			if !ok || ms == nil {
				ms = make(ModeStats)
				s.Modes[Mode(key)] = ms
			}
			for name, cv := range counters {
				if v, ok := decodeNumber(cv); ok {
					ms[Counter(name)] = v
				}
			}
		}
	}

	return nil
}

func decodeNumber(raw json.RawMessage) (float64, bool) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

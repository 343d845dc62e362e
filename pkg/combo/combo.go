// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package combo implements the per-session hit streak and score multiplier.
// Nothing here is persisted; a System is discarded with its game session.
package combo

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/metrics"
)

// DefaultTimeout is how long a combo survives without a hit.
const DefaultTimeout = 3000 * time.Millisecond

// Milestone is a celebrated combo count.
type Milestone struct {
	Count     int
	Label     string
	Color     string
	Intensity int
}

var milestones = map[int]Milestone{
	5:   {Count: 5, Label: "Nice!", Color: "#ffaa00", Intensity: 1},
	10:  {Count: 10, Label: "Great!", Color: "#ff6600", Intensity: 2},
	20:  {Count: 20, Label: "Awesome!", Color: "#ff00ff", Intensity: 3},
	30:  {Count: 30, Label: "Incredible!", Color: "#00ffff", Intensity: 4},
	50:  {Count: 50, Label: "LEGENDARY!", Color: "#ffff00", Intensity: 5},
	100: {Count: 100, Label: "GODLIKE!!!", Color: "#ff0000", Intensity: 6},
}

// MilestoneAt returns the milestone for an exact combo count.
func MilestoneAt(combo int) (Milestone, bool) {
	m, ok := milestones[combo]
	return m, ok
}

// MultiplierFor returns the score multiplier tier of a combo count.
func MultiplierFor(combo int) float64 {
	switch {
	case combo >= 50:
		return 5
	case combo >= 30:
		return 4
	case combo >= 20:
		return 3
	case combo >= 10:
		return 2
	case combo >= 5:
		return 1.5
	default:
		return 1
	}
}

// EventKind tells listeners what happened.
type EventKind int

const (
	// EventUpdated follows every hit.
	EventUpdated EventKind = iota
	// EventLost follows a reset of a running combo, by timeout or explicitly.
	EventLost
)

// Event is delivered to listeners. For EventLost, Combo is the streak that
// was lost.
type Event struct {
	Kind       EventKind
	Combo      int
	Multiplier float64
	Milestone  *Milestone
}

// Listener receives combo events. It runs without the System lock held.
type Listener func(Event)

// Option configures a System.
type Option func(*System)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *System) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock injects the time source.
func WithClock(c Clock) Option {
	return func(s *System) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithListener subscribes fn to combo events.
func WithListener(fn Listener) Option {
	return func(s *System) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// System tracks one session's combo. At most one decay timer is armed at a
// time; a callback from a superseded timer does nothing.
type System struct {
	mu         sync.Mutex
	clock      Clock
	timeout    time.Duration
	listeners  []Listener
	combo      int
	maxCombo   int
	multiplier float64
	lastHit    time.Time
	timer      Timer
	generation uint64
}

// New creates an idle combo system.
func New(opts ...Option) *System {
	s := &System{
		clock:      realClock{},
		timeout:    DefaultTimeout,
		multiplier: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddHit extends the combo, re-arms the decay timer and returns the new
// multiplier.
func (s *System) AddHit() float64 {
	s.mu.Lock()

	s.combo++
	s.lastHit = s.clock.Now()
	if s.combo > s.maxCombo {
		s.maxCombo = s.combo
	}
	s.multiplier = MultiplierFor(s.combo)

	s.stopTimerLocked()
	gen := s.generation
	s.timer = s.clock.AfterFunc(s.timeout, func() { s.expire(gen) })

	ev := Event{Kind: EventUpdated, Combo: s.combo, Multiplier: s.multiplier}
	if m, ok := milestones[s.combo]; ok {
		ev.Milestone = &m
		metrics.ComboMilestonesTotal.WithLabelValues(strconv.Itoa(m.Count)).Inc()
		logrus.Debugf("combo milestone %d reached", m.Count)
	}
	multiplier := s.multiplier
	listeners := s.listeners

	s.mu.Unlock()

	emit(listeners, ev)
	return multiplier
}

// ResetCombo ends the current combo. It is a no-op when no combo is running.
func (s *System) ResetCombo() {
	s.mu.Lock()
	ev, lost := s.resetLocked()
	listeners := s.listeners
	s.mu.Unlock()

	if lost {
		emit(listeners, ev)
	}
}

func (s *System) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || s.combo == 0 {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	ev, lost := s.resetLocked()
	listeners := s.listeners
	s.mu.Unlock()

	if lost {
		emit(listeners, ev)
	}
}

func (s *System) resetLocked() (Event, bool) {
	s.stopTimerLocked()

	lostCombo := s.combo
	s.combo = 0
	s.multiplier = 1
	if lostCombo == 0 {
		return Event{}, false
	}
	return Event{Kind: EventLost, Combo: lostCombo, Multiplier: 1}, true
}

// stopTimerLocked cancels the armed timer and invalidates its callback.
func (s *System) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

// Close cancels any pending decay. Call it when the session ends.
func (s *System) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
}

// CalculateScore applies the current multiplier to a base score.
func (s *System) CalculateScore(base float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int(math.Floor(base * s.multiplier))
}

// Combo returns the current streak.
func (s *System) Combo() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.combo
}

// Multiplier returns the current score multiplier.
func (s *System) Multiplier() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.multiplier
}

// MaxCombo returns the best streak of the session.
func (s *System) MaxCombo() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.maxCombo
}

// LastHit returns the time of the latest hit, zero before the first.
func (s *System) LastHit() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastHit
}

func emit(listeners []Listener, ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}

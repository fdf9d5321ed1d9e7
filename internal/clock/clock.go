// Package clock provides the elapsed playback time a session reads every
// tick. Values may be negative before playback starts; the session clamps.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Duration // Elapsed since the round started
	Reset() error       // Restart from zero, called when a round starts
}

// Finisher is implemented by clocks that can run out, such as a track that
// has played to its end. A finished clock will not move any further.
type Finisher interface {
	Finished() bool
}

// Wall measures real time, optionally starting after a delay
type Wall struct {
	Delay time.Duration
	now   func() time.Time
	start time.Time
}

func NewWall(delay time.Duration) *Wall {
	w := &Wall{Delay: delay, now: time.Now}
	w.Reset()
	return w
}

func (w *Wall) Reset() error {
	w.start = w.now().Add(w.Delay)
	return nil
}

func (w *Wall) Now() time.Duration {
	return w.now().Sub(w.start)
}

// Manual only moves when told to, for tests and replays
type Manual struct {
	mu      sync.Mutex
	elapsed time.Duration
}

func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

func (m *Manual) Reset() error {
	m.Set(0)
	return nil
}

func (m *Manual) Set(d time.Duration) {
	m.mu.Lock()
	m.elapsed = d
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.elapsed += d
	m.mu.Unlock()
}

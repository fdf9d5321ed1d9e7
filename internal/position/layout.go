// Package position maps chart time onto the falling screen coordinate.
package position

import (
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
)

type Config struct {
	SpawnY       float64       // Off screen start coordinate
	BottomOffset float64       // Judgment line distance from the bottom of the viewport
	LeadTime     time.Duration // How long a note is visible before it is due
	Speed        float64       // Pixels per second, derived from the other values when <= 0
}

func DefaultConfig() Config {
	return Config{
		SpawnY:       -50,
		BottomOffset: 150,
		LeadTime:     2 * time.Second,
	}
}

// Layout is fixed when a round starts. A resize mid round must not move the
// judgment line under a note that is already falling.
type Layout struct {
	SpawnY       float64
	JudgmentLine float64
	Speed        float64
	LeadTime     time.Duration
}

func NewLayout(viewportHeight float64, c Config) Layout {
	l := Layout{
		SpawnY:       c.SpawnY,
		JudgmentLine: viewportHeight - c.BottomOffset,
		Speed:        c.Speed,
		LeadTime:     c.LeadTime,
	}
	if l.Speed <= 0 && l.LeadTime > 0 {
		l.Speed = (l.JudgmentLine - l.SpawnY) / l.LeadTime.Seconds()
	}
	return l
}

// Project returns the screen coordinate of a note at the given elapsed time
func (l Layout) Project(n *game.Note, elapsed time.Duration) float64 {
	fall := elapsed - (n.Time - l.LeadTime)
	return l.SpawnY + l.Speed*fall.Seconds()
}

// Update projects every note for the current tick
func (l Layout) Update(notes []*game.Note, elapsed time.Duration) {
	for _, n := range notes {
		n.Y = l.Project(n, elapsed)
	}
}

// TimeAt is the inverse of Project, the elapsed time at which a note reaches y
func (l Layout) TimeAt(n *game.Note, y float64) time.Duration {
	if l.Speed == 0 {
		return n.Time
	}
	fall := time.Duration((y - l.SpawnY) / l.Speed * float64(time.Second))
	return n.Time - l.LeadTime + fall
}

// Pixels converts a duration of falling into a screen distance
func (l Layout) Pixels(d time.Duration) float64 {
	return l.Speed * d.Seconds()
}

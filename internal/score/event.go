package score

import (
	"fmt"

	"git.lost.host/meutraa/hoshi/internal/game"
)

// Event is a judgment outcome. Presentation subscribes to these, scoring
// never depends on anything done with them.
type Event interface {
	fmt.Stringer
	isEvent()
}

type HitResolved struct {
	Note            *game.Note
	Points          int // Base points after the combo multiplier
	Bonus           int // Color milestone bonus, usually 0
	ComboAfter      int
	ColorComboAfter int // 0 for stars
	ScoreAfter      int
}

func (h HitResolved) ScoreDelta() int {
	return h.Points + h.Bonus
}

func (h HitResolved) String() string {
	return fmt.Sprintf("hit %v lane %v +%v combo %v", h.Note.Kind, h.Note.Lane, h.ScoreDelta(), h.ComboAfter)
}

type MissReason uint8

const (
	Tapped  MissReason = iota // Tap with nothing in range
	Expired                   // Note passed the line unhit
)

func (r MissReason) String() string {
	if r == Expired {
		return "expired"
	}
	return "tapped"
}

type MissResolved struct {
	Reason     MissReason
	Lane       int
	Note       *game.Note // nil for tapped misses
	Penalty    int        // Configured penalty
	Applied    int        // Points actually taken, less than Penalty near zero
	ScoreAfter int
}

func (m MissResolved) String() string {
	return fmt.Sprintf("miss %v lane %v -%v", m.Reason, m.Lane, m.Applied)
}

func (HitResolved) isEvent()  {}
func (MissResolved) isEvent() {}

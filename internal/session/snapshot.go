package session

import (
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
	"git.lost.host/meutraa/hoshi/internal/score"
)

// Snapshot is a copy of the session state for renderers, safe to keep
// while the session moves on.
type Snapshot struct {
	State        State
	Notes        []game.Note
	Score        int
	Combo        int
	ColorCombos  score.ColorCombos
	Elapsed      time.Duration
	Duration     time.Duration
	Cleared      bool
	Target       int
	JudgmentLine float64
	Stats        Stats
}

type Stats struct {
	Notes   int // Notes in the generated chart
	Hits    int
	Tapped  int // Taps that hit nothing
	Expired int
}

type Result struct {
	FinalScore int
	Cleared    bool
	Grade      game.Grade
	Stats      Stats
}

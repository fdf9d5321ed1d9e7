package score

import "git.lost.host/meutraa/hoshi/internal/game"

// ColorCombos is indexed by game.Color, the None slot stays zero
type ColorCombos [len(game.Colors) + 1]int

func (c ColorCombos) Get(color game.Color) int {
	if int(color) >= len(c) {
		return 0
	}
	return c[color]
}

// Tally holds the score counters of a round. Every mutation keeps all
// counters at or above zero.
type Tally struct {
	Score       int
	Combo       int
	ColorCombos ColorCombos
}

func (t *Tally) Add(points int) {
	t.Score += points
	if t.Score < 0 {
		t.Score = 0
	}
}

// Penalize subtracts up to p points and returns how many were taken
func (t *Tally) Penalize(p int) int {
	if p > t.Score {
		p = t.Score
	}
	t.Score -= p
	return p
}

func (t *Tally) Break() {
	t.Combo = 0
}

// Hit counts one more hit and returns the new combo
func (t *Tally) Hit() int {
	t.Combo++
	return t.Combo
}

// HitColor counts a heart of color c, resets every other color, and returns
// the new count for c
func (t *Tally) HitColor(c game.Color) int {
	if c == game.None || int(c) >= len(t.ColorCombos) {
		return 0
	}
	for i := range t.ColorCombos {
		if game.Color(i) != c {
			t.ColorCombos[i] = 0
		}
	}
	t.ColorCombos[c]++
	return t.ColorCombos[c]
}

func (t *Tally) Reset() {
	*t = Tally{}
}

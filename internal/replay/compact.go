package replay

import (
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
)

// InputsCompact is a run of consecutive taps on one lane. A journal stores
// runs in order, so flattening them gives back the original sequence.
type InputsCompact struct {
	Lane  int
	Times []time.Duration
}

func compactInputs(inputs []game.Input) []InputsCompact {
	ins := []InputsCompact{}
	for _, i := range inputs {
		if n := len(ins); n > 0 && ins[n-1].Lane == i.Lane {
			ins[n-1].Times = append(ins[n-1].Times, i.Time)
			continue
		}
		ins = append(ins, InputsCompact{Lane: i.Lane, Times: []time.Duration{i.Time}})
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Lane: i.Lane, Time: t})
		}
	}
	return ins
}

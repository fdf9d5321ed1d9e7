package replay

import (
	"testing"
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
)

type compactTest struct {
	Inputs  []game.Input
	Compact []InputsCompact
}

var compactTests = []compactTest{
	{Inputs: []game.Input{}, Compact: []InputsCompact{}},
	{
		Inputs: []game.Input{{Lane: 0, Time: 100}, {Lane: 3, Time: 200}},
		Compact: []InputsCompact{
			{Lane: 0, Times: []time.Duration{100}},
			{Lane: 3, Times: []time.Duration{200}},
		},
	},
	{
		Inputs: []game.Input{{Lane: 1, Time: 2}, {Lane: 1, Time: 2}, {Lane: 2, Time: 2}, {Lane: 1, Time: 5}},
		Compact: []InputsCompact{
			{Lane: 1, Times: []time.Duration{2, 2}},
			{Lane: 2, Times: []time.Duration{2}},
			{Lane: 1, Times: []time.Duration{5}},
		},
	},
}

func TestCompactInputs(t *testing.T) {
	equal := func(p, q []InputsCompact) bool {
		if len(p) != len(q) {
			return false
		}
		for i := 0; i < len(p); i++ {
			pi, qi := p[i], q[i]
			if pi.Lane != qi.Lane {
				return false
			}
			if len(pi.Times) != len(qi.Times) {
				return false
			}
			for j := 0; j < len(pi.Times); j++ {
				if pi.Times[j] != qi.Times[j] {
					return false
				}
			}
		}
		return true
	}

	for _, test := range compactTests {
		out := compactInputs(test.Inputs)
		if !equal(out, test.Compact) {
			t.Log("out     ", out)
			t.Log("expected", test.Compact)
			t.Fail()
		}
	}
}

func TestUncompactInputs(t *testing.T) {
	equal := func(p, q []game.Input) bool {
		if len(p) != len(q) {
			return false
		}
		for i := 0; i < len(p); i++ {
			if p[i] != q[i] {
				return false
			}
		}
		return true
	}

	for _, test := range compactTests {
		out := uncompactInputs(test.Compact)
		if !equal(out, test.Inputs) {
			t.Log("in      ", test.Compact)
			t.Log("expected", test.Inputs)
			t.Fail()
		}
	}
}

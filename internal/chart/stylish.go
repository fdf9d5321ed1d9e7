package chart

import (
	"math"
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
)

// Stylish places notes on a fixed beat grid. Emission follows a sine shaped
// intensity over the window so a chart builds up and calms down without any
// analysis of the audio.
type Stylish struct {
	Params Params
}

func (s *Stylish) intensity(t, end time.Duration) float64 {
	frac := t.Seconds() / end.Seconds()
	return clamp01((math.Sin(frac*math.Pi*2)*0.3 + 0.4) * s.Params.Density)
}

func (s *Stylish) Generate(duration time.Duration, rng Rand) []*game.Note {
	p := s.Params
	b := newBuilder(rng)
	start, end := p.Window(duration)
	if end <= start || p.Step <= 0 {
		return b.chart()
	}

	strongEvery := p.StrongEvery
	if strongEvery < 1 {
		strongEvery = 1
	}

	for i := 0; ; i++ {
		t := start + time.Duration(i)*p.Step
		if t >= end {
			break
		}
		intensity := s.intensity(t, end)

		if i%strongEvery == 0 {
			size := 1
			if b.chance(p.ChordChance) {
				size = 2
			}
			for _, lane := range b.lanes(size) {
				if b.chance(intensity) {
					b.add(lane, t, b.kind(p.StrongHeartChance))
				}
			}
			continue
		}

		if b.chance(intensity * p.WeakScale) {
			b.add(b.lane(), t, b.kind(p.WeakHeartChance))
		}
	}
	return b.chart()
}

package chart

import (
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
)

type Pattern uint8

const (
	Simple Pattern = iota
	Moderate
	Intense
)

type Section struct {
	Name    string
	From    float64 // Fraction of the window end where this section starts
	Density float64
	Pattern Pattern
}

var DefaultSections = []Section{
	{Name: "intro", From: 0, Density: 0.4, Pattern: Simple},
	{Name: "verse", From: 0.25, Density: 0.6, Pattern: Moderate},
	{Name: "bridge", From: 0.5, Density: 0.7, Pattern: Moderate},
	{Name: "chorus", From: 0.75, Density: 0.9, Pattern: Intense},
}

// Sectioned splits the window into song sections, each with its own density
// and pattern vocabulary: runs of notes over shifting lanes, off-beat eighths
// and chords towards the end.
type Sectioned struct {
	Params   Params
	Sections []Section
}

func (s *Sectioned) sections() []Section {
	if len(s.Sections) == 0 {
		return DefaultSections
	}
	return s.Sections
}

// section returns the section t falls in and the time that section ends
func (s *Sectioned) section(t, end time.Duration) (Section, time.Duration) {
	secs := s.sections()
	idx := 0
	for i, sec := range secs {
		if t >= time.Duration(sec.From*float64(end)) {
			idx = i
		}
	}
	sectionEnd := end
	if idx+1 < len(secs) {
		sectionEnd = time.Duration(secs[idx+1].From * float64(end))
	}
	return secs[idx], sectionEnd
}

func (s *Sectioned) Generate(duration time.Duration, rng Rand) []*game.Note {
	p := s.Params
	b := newBuilder(rng)
	start, end := p.Window(duration)
	if end <= start || p.Step <= 0 {
		return b.chart()
	}
	beat, eighth := p.Step, p.Step/2

	for i := 0; ; i++ {
		t := start + time.Duration(i)*beat
		if t >= end {
			break
		}
		sec, sectionEnd := s.section(t, end)
		density := clamp01(sec.Density * p.Density)

		switch sec.Pattern {
		case Simple:
			if !b.chance(density) {
				continue
			}
			if b.chance(0.4) {
				i += b.run(t, beat, sectionEnd, 0.3, true) - 1
			} else {
				b.add(b.lane(), t, b.kind(0.3))
			}
		case Moderate:
			if b.chance(density) {
				if b.chance(0.5) {
					length := b.run(t, beat, sectionEnd, 0.4, false)
					t += time.Duration(length-1) * beat
					i += length - 1
				} else {
					b.add(b.lane(), t, b.kind(0.4))
				}
			}
			if off := t + eighth; off < sectionEnd && b.chance(density*0.6) {
				b.add(b.lane(), off, b.kind(0.4))
			}
		case Intense:
			if b.chance(0.5) {
				b.chord(t)
			} else if b.chance(density) {
				b.add(b.lane(), t, game.StarKind())
			}
			if off := t + eighth; off < sectionEnd && b.chance(density*0.9) {
				size := 1
				if b.chance(0.3) {
					size = 2
				}
				for _, lane := range b.lanes(size) {
					b.add(lane, off, game.StarKind())
				}
			}
		}
	}
	return b.chart()
}

// run emits two or three consecutive notes of the same kind, one per beat, and
// returns how many beats it spans. Hearts in a run share one color. With
// shifting set every note moves one lane to the right, otherwise lanes are
// drawn at random.
func (b *builder) run(t, beat, until time.Duration, heartChance float64, shifting bool) int {
	kind := game.StarKind()
	if b.chance(heartChance) {
		kind = game.HeartKind(b.color())
	}
	length := 2 + b.rng.Intn(2)
	lane := b.lane()
	for i := 0; i < length; i++ {
		at := t + time.Duration(i)*beat
		if at >= until {
			break
		}
		if shifting {
			b.add((lane+i)%game.LaneCount, at, kind)
		} else {
			b.add(b.lane(), at, kind)
		}
	}
	return length
}

// chord emits a simultaneous group: every lane, one half of the field, or two
// to three random lanes.
func (b *builder) chord(t time.Duration) {
	var lanes []int
	switch roll := b.rng.Float64(); {
	case roll < 0.3:
		lanes = b.lanes(game.LaneCount)
	case roll < 0.6:
		half := game.LaneCount / 2
		offset := 0
		if b.chance(0.5) {
			offset = half
		}
		for l := 0; l < half; l++ {
			lanes = append(lanes, offset+l)
		}
	default:
		size := 2
		if b.chance(0.5) {
			size = 3
		}
		lanes = b.lanes(size)
	}
	for _, lane := range lanes {
		b.add(lane, t, game.StarKind())
	}
}

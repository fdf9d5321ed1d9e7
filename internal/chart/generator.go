package chart

import (
	"math/rand"
	"sort"
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
	"github.com/google/uuid"
)

// Rand is the random source a generator draws from. *rand.Rand satisfies it,
// so a seed fully determines a chart, note ids included.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Read(p []byte) (int, error)
}

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

type Generator interface {
	// Generate returns the chart notes sorted by time. The duration must
	// already be resolved, see ResolveDuration.
	Generate(duration time.Duration, rng Rand) []*game.Note
}

type Params struct {
	Start  time.Duration // First possible note
	Tail   time.Duration // Quiet time kept at the end of the track
	MinEnd time.Duration // Lower bound for the end of the window, 0 disables
	Step   time.Duration // Grid spacing, one beat

	Density float64 // Scales every emission probability

	// Stylish policy
	StrongEvery       int     // Steps between strong beats
	ChordChance       float64 // Chance of a two lane group on a strong beat
	StrongHeartChance float64
	WeakScale         float64 // Weak beat emission relative to intensity
	WeakHeartChance   float64
}

func DefaultParams() Params {
	return Params{
		Start:             2 * time.Second,
		Tail:              2 * time.Second,
		Step:              500 * time.Millisecond,
		Density:           1,
		StrongEvery:       4,
		ChordChance:       0.3,
		StrongHeartChance: 0.25,
		WeakScale:         0.6,
		WeakHeartChance:   0.2,
	}
}

// Window is the playable range [start, end) for a track duration.
// It is empty when end <= start.
func (p Params) Window(duration time.Duration) (time.Duration, time.Duration) {
	end := duration - p.Tail
	if end < p.MinEnd {
		end = p.MinEnd
	}
	return p.Start, end
}

// ResolveDuration substitutes fallback for a missing or non-positive duration.
// The second return value reports whether the substitution happened.
func ResolveDuration(duration, fallback time.Duration) (time.Duration, bool) {
	if duration > 0 {
		return duration, false
	}
	return fallback, true
}

type slot struct {
	lane int
	time time.Duration
}

// builder collects notes and enforces one note per lane and time
type builder struct {
	rng   Rand
	notes []*game.Note
	taken map[slot]bool
}

func newBuilder(rng Rand) *builder {
	return &builder{rng: rng, taken: map[slot]bool{}}
}

func (b *builder) add(lane int, t time.Duration, kind game.Kind) bool {
	if !game.ValidLane(lane) {
		panic("chart: generated lane out of range")
	}
	s := slot{lane: lane, time: t}
	if b.taken[s] {
		return false
	}
	b.taken[s] = true
	b.notes = append(b.notes, &game.Note{
		ID:   uuid.Must(uuid.NewRandomFromReader(b.rng)),
		Lane: lane,
		Time: t,
		Kind: kind,
	})
	return true
}

func (b *builder) chance(p float64) bool {
	return b.rng.Float64() < p
}

func (b *builder) lane() int {
	return b.rng.Intn(game.LaneCount)
}

func (b *builder) color() game.Color {
	return game.Colors[b.rng.Intn(len(game.Colors))]
}

// kind draws a heart of a random color with the given chance, a star otherwise
func (b *builder) kind(heartChance float64) game.Kind {
	if b.chance(heartChance) {
		return game.HeartKind(b.color())
	}
	return game.StarKind()
}

// lanes returns n distinct lanes in random order
func (b *builder) lanes(n int) []int {
	if n > game.LaneCount {
		n = game.LaneCount
	}
	all := make([]int, game.LaneCount)
	for i := range all {
		all[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + b.rng.Intn(game.LaneCount-i)
		all[i], all[j] = all[j], all[i]
	}
	return all[:n]
}

// chart sorts by time, keeping creation order between notes of equal time
func (b *builder) chart() []*game.Note {
	sort.SliceStable(b.notes, func(i, j int) bool {
		return b.notes[i].Time < b.notes[j].Time
	})
	if b.notes == nil {
		return []*game.Note{}
	}
	return b.notes
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

package chart

import (
	"testing"
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
)

func generators() map[string]Generator {
	gens := map[string]Generator{}
	for _, name := range Names() {
		d, _ := Lookup(name)
		gens[name] = d.Generator()
	}
	return gens
}

func checkChart(t *testing.T, name string, notes []*game.Note, from, to time.Duration) {
	t.Helper()
	seen := map[slot]bool{}
	for i, n := range notes {
		if !game.ValidLane(n.Lane) {
			t.Fatalf("%v: lane %v out of range", name, n.Lane)
		}
		if n.Time < from || n.Time > to {
			t.Fatalf("%v: note at %v outside [%v, %v]", name, n.Time, from, to)
		}
		s := slot{lane: n.Lane, time: n.Time}
		if seen[s] {
			t.Fatalf("%v: two notes in lane %v at %v", name, n.Lane, n.Time)
		}
		seen[s] = true
		if i > 0 && notes[i-1].Time > n.Time {
			t.Fatalf("%v: chart not sorted at %v", name, i)
		}
		if n.Kind.IsHeart() == (n.Kind.Color == game.None) {
			t.Fatalf("%v: inconsistent kind %v", name, n.Kind)
		}
	}
}

func TestTenSecondTrack(t *testing.T) {
	g := &Stylish{Params: DefaultParams()}
	notes := g.Generate(10*time.Second, NewRand(42))
	again := g.Generate(10*time.Second, NewRand(42))

	if len(notes) != len(again) {
		t.Fatalf("same seed gave %v and %v notes", len(notes), len(again))
	}
	expected := []struct {
		lane int
		time time.Duration
		kind game.Kind
	}{
		{3, 2 * time.Second, game.HeartKind(game.Yellow)},
		{3, 2500 * time.Millisecond, game.StarKind()},
		{0, 3 * time.Second, game.StarKind()},
		{2, 4 * time.Second, game.StarKind()},
		{2, 6500 * time.Millisecond, game.StarKind()},
	}
	if len(notes) != len(expected) {
		t.Fatalf("seed 42 gave %v notes, expected %v", len(notes), len(expected))
	}
	for i, e := range expected {
		n := notes[i]
		if n.Lane != e.lane || n.Time != e.time || n.Kind != e.kind {
			t.Log("note", i, "expected", e.lane, e.time, e.kind, "got", n.Lane, n.Time, n.Kind)
			t.Fail()
		}
	}
	for i := range notes {
		if notes[i].ID != again[i].ID || notes[i].Lane != again[i].Lane || notes[i].Time != again[i].Time || notes[i].Kind != again[i].Kind {
			t.Fatalf("note %v differs between runs", i)
		}
	}
	checkChart(t, "stylish", notes, 2*time.Second, 8*time.Second)
}

func TestInvariantsAcrossSeeds(t *testing.T) {
	for name, g := range generators() {
		for seed := int64(0); seed < 50; seed++ {
			duration := time.Duration(20+seed*7) * time.Second
			notes := g.Generate(duration, NewRand(seed))
			checkChart(t, name, notes, 2*time.Second, duration-2*time.Second)
		}
	}
}

func TestSimultaneousGroupsAreLaneDisjoint(t *testing.T) {
	for name, g := range generators() {
		notes := g.Generate(3*time.Minute, NewRand(7))
		groups := map[time.Duration]map[int]bool{}
		for _, n := range notes {
			lanes, ok := groups[n.Time]
			if !ok {
				lanes = map[int]bool{}
				groups[n.Time] = lanes
			}
			if lanes[n.Lane] {
				t.Fatalf("%v: lane %v used twice at %v", name, n.Lane, n.Time)
			}
			lanes[n.Lane] = true
		}
	}
}

func TestShortTrackIsEmpty(t *testing.T) {
	for name, g := range generators() {
		for _, d := range []time.Duration{0, time.Second, 3999 * time.Millisecond, 4 * time.Second} {
			notes := g.Generate(d, NewRand(1))
			if notes == nil || len(notes) != 0 {
				t.Errorf("%v: %v track gave %v notes", name, d, len(notes))
			}
		}
	}
}

func TestMinEndExtendsWindow(t *testing.T) {
	p := DefaultParams()
	p.MinEnd = 60 * time.Second
	start, end := p.Window(10 * time.Second)
	if start != 2*time.Second || end != 60*time.Second {
		t.Fatalf("window [%v, %v)", start, end)
	}
	notes := (&Stylish{Params: p}).Generate(10*time.Second, NewRand(3))
	checkChart(t, "stylish", notes, start, end)
}

func TestDensityZeroIsEmpty(t *testing.T) {
	p := DefaultParams()
	p.Density = 0
	if n := (&Stylish{Params: p}).Generate(time.Minute, NewRand(5)); len(n) != 0 {
		t.Fatalf("expected no notes, got %v", len(n))
	}
}

func TestSectionedUsesEverySection(t *testing.T) {
	g := &Sectioned{Params: DefaultParams()}
	end := 118 * time.Second
	notes := g.Generate(2*time.Minute, NewRand(11))
	counts := map[string]int{}
	for _, n := range notes {
		sec, _ := g.section(n.Time, end)
		counts[sec.Name]++
	}
	for _, sec := range DefaultSections {
		if counts[sec.Name] == 0 {
			t.Errorf("no notes in %v", sec.Name)
		}
	}
	// chords only show up in the chorus
	if counts["chorus"] <= counts["intro"] {
		t.Errorf("chorus %v not denser than intro %v", counts["chorus"], counts["intro"])
	}
}

var resolveTests = map[time.Duration]time.Duration{
	-time.Second:     30 * time.Second,
	0:                30 * time.Second,
	time.Millisecond: time.Millisecond,
	3 * time.Minute:  3 * time.Minute,
}

func TestResolveDuration(t *testing.T) {
	for in, expected := range resolveTests {
		out, fell := ResolveDuration(in, 30*time.Second)
		if out != expected || fell != (in <= 0) {
			t.Errorf("%v: got %v %v", in, out, fell)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"easy", "normal", "hard"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("missing difficulty %v", name)
		}
	}
	if _, ok := Lookup("impossible"); ok {
		t.Error("unexpected difficulty")
	}
}

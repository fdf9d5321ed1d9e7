package replay

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/hoshi/internal/chart"
	"git.lost.host/meutraa/hoshi/internal/clock"
	"git.lost.host/meutraa/hoshi/internal/game"
	"git.lost.host/meutraa/hoshi/internal/logging"
	"git.lost.host/meutraa/hoshi/internal/session"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// play drives a live round on a manual clock, tapping near due notes most of
// the time and mashing random lanes otherwise. It stops at abortAt when set.
func play(t *testing.T, difficulty string, seed int64, abortAt time.Duration) (session.Config, *session.Session) {
	cfg := session.DefaultConfig()
	cfg.Difficulty, _ = chart.Lookup(difficulty)
	cfg.Seed = seed
	cfg.Duration = 25 * time.Second
	return cfg, playConfig(t, cfg, abortAt)
}

func playConfig(t *testing.T, cfg session.Config, abortAt time.Duration) *session.Session {
	clk := &clock.Manual{}
	s := session.New(cfg, clk, logging.Discard())
	if err := s.Start(); nil != err {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	layout := s.Layout()
	for at := time.Duration(0); ; at += 16 * time.Millisecond {
		if abortAt > 0 && at >= abortAt {
			s.End()
			break
		}
		clk.Set(at)
		if !s.Tick() {
			break
		}
		for _, n := range s.Snapshot().Notes {
			if n.Distance(layout.JudgmentLine) < 20 && rng.Float64() < 0.3 {
				s.Tap(n.Lane)
			}
		}
		if rng.Float64() < 0.02 {
			s.Tap(rng.Intn(game.LaneCount))
		}
	}
	return s
}

func TestReplayMatchesLiveRound(t *testing.T) {
	for _, difficulty := range chart.Names() {
		for seed := int64(1); seed <= 3; seed++ {
			for _, abortAt := range []time.Duration{0, 12 * time.Second} {
				cfg, s := play(t, difficulty, seed, abortAt)
				live, err := s.Result()
				if nil != err {
					t.Fatal(err)
				}
				if live.Stats.Hits == 0 {
					t.Fatalf("%v/%v: no hits in live round", difficulty, seed)
				}

				replayed, err := Run(Record(cfg, s), session.DefaultConfig(), logging.Discard())
				if nil != err {
					t.Fatal(err)
				}
				if replayed != live {
					t.Errorf("%v/%v/%v: live %+v replay %+v", difficulty, seed, abortAt, live, replayed)
				}
			}
		}
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), logging.Discard())
	if nil != err {
		t.Fatal(err)
	}
	defer store.Close()

	cfg, s := play(t, "normal", 5, 0)
	live, _ := s.Result()
	j := Record(cfg, s)
	j.Created = time.Unix(100, 0)
	if err := store.Save(j); nil != err {
		t.Fatal(err)
	}
	newer := Record(cfg, s)
	newer.Created = time.Unix(200, 0)
	if err := store.Save(newer); nil != err {
		t.Fatal(err)
	}

	loaded, err := store.Load(j.ID)
	if nil != err {
		t.Fatal(err)
	}
	if loaded.Seed != j.Seed || loaded.Difficulty != j.Difficulty || loaded.Duration != j.Duration || loaded.Elapsed != j.Elapsed || len(loaded.Inputs) != len(j.Inputs) {
		t.Fatalf("loaded %+v saved %+v", loaded, j)
	}
	for i := range j.Inputs {
		if loaded.Inputs[i] != j.Inputs[i] {
			t.Fatalf("input %v: %v != %v", i, loaded.Inputs[i], j.Inputs[i])
		}
	}
	if loaded.Layout != j.Layout || loaded.Layout.ViewportHeight != 850 {
		t.Fatalf("layout %+v saved %+v", loaded.Layout, j.Layout)
	}
	if loaded.Rules.ColorMilestones[5] != 300 {
		t.Fatalf("rules %+v", loaded.Rules)
	}

	replayed, err := Run(loaded, session.DefaultConfig(), logging.Discard())
	if nil != err || replayed != live {
		t.Fatalf("replay %+v live %+v err %v", replayed, live, err)
	}

	latest, err := store.Latest()
	if nil != err || latest.ID != newer.ID {
		t.Fatalf("latest %v err %v", latest, err)
	}
	all, err := store.List()
	if nil != err || len(all) != 2 || all[0].ID != newer.ID {
		t.Fatalf("list %v err %v", all, err)
	}
}

func TestLoadMissing(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), logging.Discard())
	if nil != err {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.Load(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatal(err)
	}
	if _, err := store.Latest(); !errors.Is(err, ErrNotFound) {
		t.Fatal(err)
	}
}

func TestRunUnknownDifficulty(t *testing.T) {
	_, err := Run(&Journal{Difficulty: "impossible"}, session.DefaultConfig(), logging.Discard())
	if !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatal(err)
	}
}

func TestReplayKeepsLayout(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.Seed = 11
	cfg.Duration = 25 * time.Second
	cfg.ViewportHeight = 600
	cfg.Layout.BottomOffset = 100
	cfg.Layout.LeadTime = 1500 * time.Millisecond

	s := playConfig(t, cfg, 0)
	live, err := s.Result()
	if nil != err {
		t.Fatal(err)
	}

	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), logging.Discard())
	if nil != err {
		t.Fatal(err)
	}
	defer store.Close()
	j := Record(cfg, s)
	if err := store.Save(j); nil != err {
		t.Fatal(err)
	}
	loaded, err := store.Load(j.ID)
	if nil != err {
		t.Fatal(err)
	}
	if loaded.Layout.ViewportHeight != 600 || loaded.Layout.Position != cfg.Layout {
		t.Fatalf("layout %+v", loaded.Layout)
	}

	// The caller's defaults must not leak into the replay
	replayed, err := Run(loaded, session.DefaultConfig(), logging.Discard())
	if nil != err {
		t.Fatal(err)
	}
	if replayed != live {
		t.Fatalf("live %+v replay %+v", live, replayed)
	}
}

func TestOpenExistingJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	for i := 0; i < 2; i++ {
		store, err := Open(path, logging.Discard())
		if nil != err {
			t.Fatalf("open %v: %v", i, err)
		}
		store.Close()
	}
}

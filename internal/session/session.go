// Package session runs one round: it owns the active notes and the score
// counters and moves them forward one tick at a time.
package session

import (
	"sync"
	"time"

	"git.lost.host/meutraa/hoshi/internal/chart"
	"git.lost.host/meutraa/hoshi/internal/clock"
	"git.lost.host/meutraa/hoshi/internal/game"
	"git.lost.host/meutraa/hoshi/internal/position"
	"git.lost.host/meutraa/hoshi/internal/score"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyStarted = errors.New("session already started")
	ErrNotEnded       = errors.New("session has not ended")
)

type Config struct {
	Difficulty chart.Difficulty
	Generator  chart.Generator // Replaces the difficulty's generator when set
	Seed       int64

	Duration         time.Duration // Track duration, <= 0 when unknown
	FallbackDuration time.Duration

	Rules          score.Rules
	Layout         position.Config
	ViewportHeight float64
}

func DefaultConfig() Config {
	d, _ := chart.Lookup("normal")
	return Config{
		Difficulty:       d,
		FallbackDuration: 30 * time.Second,
		Rules:            score.DefaultRules(),
		Layout:           position.DefaultConfig(),
		ViewportHeight:   850,
	}
}

// Session is safe for concurrent use. Every method serializes on one lock,
// input may arrive on a different goroutine than the tick loop.
type Session struct {
	mu sync.Mutex

	cfg   Config
	clock clock.Clock
	log   logrus.FieldLogger

	state    State
	duration time.Duration
	elapsed  time.Duration
	layout   position.Layout
	judge    score.Scorer
	chart    *game.Chart
	tally    score.Tally
	cleared  bool
	stats    Stats
	inputs   []game.Input

	listeners []func(score.Event)
}

func New(cfg Config, clk clock.Clock, log logrus.FieldLogger) *Session {
	return &Session{
		cfg:   cfg,
		clock: clk,
		log:   log,
		chart: game.NewChart(nil),
	}
}

// Subscribe registers fn for every judgment event. Listeners run after the
// session lock is released and may call back into the session.
func (s *Session) Subscribe(fn func(score.Event)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return errors.Wrapf(ErrAlreadyStarted, "state %v", s.state)
	}

	duration, fell := chart.ResolveDuration(s.cfg.Duration, s.cfg.FallbackDuration)
	if fell {
		s.log.WithFields(logrus.Fields{
			"duration": s.cfg.Duration,
			"fallback": duration,
		}).Warn("track duration unknown, using fallback")
	}

	gen := s.cfg.Generator
	if gen == nil {
		gen = s.cfg.Difficulty.Generator()
	}
	notes := gen.Generate(duration, chart.NewRand(s.cfg.Seed))
	if len(notes) == 0 {
		s.log.WithField("duration", duration).Info("generated an empty chart")
	}

	s.duration = duration
	s.elapsed = 0
	s.chart = game.NewChart(notes)
	s.layout = position.NewLayout(s.cfg.ViewportHeight, s.cfg.Layout)
	s.judge = score.NewJudge(s.cfg.Rules, s.layout.JudgmentLine)
	s.tally.Reset()
	s.cleared = false
	s.stats = Stats{Notes: len(notes)}
	s.inputs = nil

	if err := s.clock.Reset(); nil != err {
		s.log.WithError(err).Warn("clock not reset, timing may start late")
	}
	s.layout.Update(s.chart.Notes, 0)
	s.state = Running

	s.log.WithFields(logrus.Fields{
		"seed":       s.cfg.Seed,
		"difficulty": s.cfg.Difficulty.Name,
		"duration":   duration,
		"notes":      len(notes),
		"hearts":     s.chart.HeartCount,
	}).Info("round started")
	return nil
}

// Tick advances the round to the current clock time and reports whether the
// round is still running. It does nothing once the round has ended.
func (s *Session) Tick() bool {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return false
	}

	// The clock may run behind zero during a start delay or jitter
	// backwards, elapsed time never decreases.
	if now := s.clock.Now(); now > s.elapsed {
		s.elapsed = now
	}

	// Sweep must see the positions of this tick
	s.layout.Update(s.chart.Notes, s.elapsed)
	events := s.judge.Sweep(s.chart, &s.tally)
	s.stats.Expired += len(events)
	s.checkCleared()

	if s.elapsed >= s.duration || drained(s.clock) {
		s.end()
	}
	running := s.state == Running
	listeners := s.listeners
	s.mu.Unlock()

	dispatch(listeners, events...)
	return running
}

// Tap judges an input on lane against the positions of the latest tick.
// An invalid lane is an error in any state, otherwise taps outside a
// running round are ignored.
func (s *Session) Tap(lane int) error {
	if !game.ValidLane(lane) {
		return errors.Wrapf(score.ErrLaneOutOfRange, "lane %d", lane)
	}

	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return nil
	}

	ev, err := s.judge.Tap(s.chart, lane, &s.tally)
	if nil != err {
		s.mu.Unlock()
		return err
	}
	s.inputs = append(s.inputs, game.Input{Lane: lane, Time: s.elapsed})
	switch ev.(type) {
	case score.HitResolved:
		s.stats.Hits++
		s.checkCleared()
	case score.MissResolved:
		s.stats.Tapped++
	}
	listeners := s.listeners
	s.mu.Unlock()

	dispatch(listeners, ev)
	return nil
}

// End stops the round, keeping whatever score has accumulated. Calling it
// again has no effect.
func (s *Session) End() {
	s.mu.Lock()
	s.end()
	s.mu.Unlock()
}

func (s *Session) end() {
	if s.state == Ended {
		return
	}
	s.state = Ended
	s.log.WithFields(logrus.Fields{
		"score":   s.tally.Score,
		"cleared": s.cleared,
		"elapsed": s.elapsed,
		"hits":    s.stats.Hits,
		"tapped":  s.stats.Tapped,
		"expired": s.stats.Expired,
	}).Info("round ended")
}

func (s *Session) checkCleared() {
	if !s.cleared && s.tally.Score >= s.cfg.Rules.TargetScore {
		s.cleared = true
		s.log.WithFields(logrus.Fields{
			"score":   s.tally.Score,
			"elapsed": s.elapsed,
		}).Info("target reached")
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := make([]game.Note, len(s.chart.Notes))
	for i, n := range s.chart.Notes {
		notes[i] = *n
	}
	return Snapshot{
		State:        s.state,
		Notes:        notes,
		Score:        s.tally.Score,
		Combo:        s.tally.Combo,
		ColorCombos:  s.tally.ColorCombos,
		Elapsed:      s.elapsed,
		Duration:     s.duration,
		Cleared:      s.cleared,
		Target:       s.cfg.Rules.TargetScore,
		JudgmentLine: s.layout.JudgmentLine,
		Stats:        s.stats,
	}
}

func (s *Session) Result() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ended {
		return Result{}, errors.Wrapf(ErrNotEnded, "state %v", s.state)
	}
	return Result{
		FinalScore: s.tally.Score,
		Cleared:    s.cleared,
		Grade:      game.GradeFor(s.tally.Score, s.cfg.Rules.TargetScore),
		Stats:      s.stats,
	}, nil
}

// Inputs returns every judged tap in order
func (s *Session) Inputs() []game.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]game.Input(nil), s.inputs...)
}

// Layout is fixed for the round once it has started
func (s *Session) Layout() position.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

func dispatch(listeners []func(score.Event), events ...score.Event) {
	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

// drained reports a clock that will never reach the round duration, a track
// that played out early under a negative offset for one.
func drained(c clock.Clock) bool {
	f, ok := c.(clock.Finisher)
	return ok && f.Finished()
}

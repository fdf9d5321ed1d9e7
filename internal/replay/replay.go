// Package replay records rounds and plays them back. A seed, a duration and
// the judged taps determine a round completely.
package replay

import (
	"git.lost.host/meutraa/hoshi/internal/chart"
	"git.lost.host/meutraa/hoshi/internal/clock"
	"git.lost.host/meutraa/hoshi/internal/session"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Record builds the journal of a finished or running session
func Record(cfg session.Config, s *session.Session) *Journal {
	snap := s.Snapshot()
	return &Journal{
		Seed:       cfg.Seed,
		Difficulty: cfg.Difficulty.Name,
		Duration:   snap.Duration,
		Elapsed:    snap.Elapsed,
		Rules:      cfg.Rules,
		Layout:     Layout{ViewportHeight: cfg.ViewportHeight, Position: cfg.Layout},
		Inputs:     s.Inputs(),
	}
}

// Run plays a journal back on a manual clock. Each tap is judged after a tick
// at the time its positions were taken live, which gives the live result.
func Run(j *Journal, base session.Config, log logrus.FieldLogger) (session.Result, error) {
	d, ok := chart.Lookup(j.Difficulty)
	if !ok {
		return session.Result{}, errors.Wrapf(ErrUnknownDifficulty, "%q", j.Difficulty)
	}
	cfg := base
	cfg.Difficulty = d
	cfg.Generator = nil
	cfg.Seed = j.Seed
	cfg.Duration = j.Duration
	cfg.Rules = j.Rules
	// Journals without a layout were all played on the defaults
	if j.Layout.ViewportHeight > 0 {
		cfg.ViewportHeight = j.Layout.ViewportHeight
		cfg.Layout = j.Layout.Position
	}

	clk := &clock.Manual{}
	s := session.New(cfg, clk, log)
	if err := s.Start(); nil != err {
		return session.Result{}, err
	}
	for _, in := range j.Inputs {
		clk.Set(in.Time)
		s.Tick()
		if err := s.Tap(in.Lane); nil != err {
			return session.Result{}, errors.Wrapf(err, "replaying tap at %v", in.Time)
		}
	}
	clk.Set(j.Elapsed)
	s.Tick()
	s.End()
	return s.Result()
}

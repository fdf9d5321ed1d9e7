package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"git.lost.host/meutraa/hoshi/internal/clock"
	"git.lost.host/meutraa/hoshi/internal/config"
	"git.lost.host/meutraa/hoshi/internal/input"
	"git.lost.host/meutraa/hoshi/internal/logging"
	"git.lost.host/meutraa/hoshi/internal/render"
	"git.lost.host/meutraa/hoshi/internal/replay"
	"git.lost.host/meutraa/hoshi/internal/score"
	"git.lost.host/meutraa/hoshi/internal/session"
	"git.lost.host/meutraa/hoshi/internal/track"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if nil != err {
		return err
	}
	defer closer.Close()

	if cfg.Replay != "" {
		return replayRound(cfg, logger)
	}
	return play(cfg, logger)
}

func replayRound(cfg config.Config, logger logrus.FieldLogger) error {
	store, err := replay.Open(cfg.Journal, logger)
	if nil != err {
		return err
	}
	defer store.Close()

	var j *replay.Journal
	if cfg.Replay == "latest" {
		j, err = store.Latest()
	} else {
		var id uuid.UUID
		if id, err = uuid.Parse(cfg.Replay); nil != err {
			return errors.Wrapf(err, "invalid journal id %q", cfg.Replay)
		}
		j, err = store.Load(id)
	}
	if nil != err {
		return err
	}

	res, err := replay.Run(j, cfg.Session(j.Seed, j.Duration), logger)
	if nil != err {
		return err
	}
	fmt.Printf("replay %v (seed %v, %v)\n", j.ID, j.Seed, j.Difficulty)
	render.PrintResult(os.Stdout, res)
	return nil
}

func play(cfg config.Config, logger logrus.FieldLogger) error {
	t, err := track.Open(cfg.Track)
	if nil != err {
		return err
	}
	defer t.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	scfg := cfg.Session(seed, t.Duration())

	// Notes follow the audio. Without a speaker the round still runs on
	// wall time.
	var clk clock.Clock = t.Clock(cfg.Offset)
	if err := t.Play(cfg.Delay, cfg.Volume); nil != err {
		logger.WithError(err).Error("playing without audio")
		clk = clock.NewWall(cfg.Delay - cfg.Offset)
	}
	defer t.Stop()

	s := session.New(scfg, clk, logger)
	var r render.Renderer = render.NewDefaultRenderer(os.Stdout, scfg.ViewportHeight)
	s.Subscribe(r.OnEvent)
	s.Subscribe(func(ev score.Event) {
		logger.WithField("event", ev.String()).Debug("judged")
	})

	if err := s.Start(); nil != err {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan input.Event, 128)
	if err := input.Listen(ctx, events, logger); nil != err {
		return err
	}

	if err := r.Init(); nil != err {
		return errors.Wrap(err, "unable to initialise terminal")
	}
	go handleInput(ctx, s, events, logger)

	loop := render.NewLoop(cfg.FramePeriod, cfg.MinInterval)
	rendered, skipped := loop.Run(ctx, func(time.Time) bool {
		running := s.Tick()
		r.Draw(s.Snapshot())
		return running
	})
	s.End()
	t.Stop()
	cancel()
	if err := r.Deinit(); nil != err {
		logger.WithError(err).Warn("unable to restore terminal")
	}
	logger.WithFields(logrus.Fields{
		"rendered": rendered,
		"skipped":  skipped,
	}).Debug("frame loop finished")

	res, err := s.Result()
	if nil != err {
		return err
	}
	render.PrintResult(os.Stdout, res)
	saveJournal(cfg, scfg, s, logger)
	return nil
}

func handleInput(ctx context.Context, s *session.Session, events <-chan input.Event, logger logrus.FieldLogger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if ev.Quit {
				s.End()
				return
			}
			if err := s.Tap(ev.Lane); nil != err {
				logger.WithError(err).WithField("lane", ev.Lane).Warn("tap rejected")
			}
		}
	}
}

// saveJournal keeps the round for replays. A failure here never spoils the
// result that was already shown.
func saveJournal(cfg config.Config, scfg session.Config, s *session.Session, logger logrus.FieldLogger) {
	store, err := replay.Open(cfg.Journal, logger)
	if nil != err {
		logger.WithError(err).Warn("journal unavailable, round not saved")
		return
	}
	defer store.Close()

	j := replay.Record(scfg, s)
	if err := store.Save(j); nil != err {
		logger.WithError(err).Warn("unable to save round")
		return
	}
	fmt.Printf("saved as %v, replay with --replay %v\n", j.ID, j.ID)
}

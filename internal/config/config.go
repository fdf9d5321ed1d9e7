package config

import (
	"time"

	"git.lost.host/meutraa/hoshi/internal/chart"
	"git.lost.host/meutraa/hoshi/internal/session"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

type Config struct {
	Track      string // Empty when replaying
	Seed       int64
	Difficulty string

	JudgmentRange    float64
	MissThreshold    float64
	TargetScore      int
	FallbackDuration time.Duration

	Offset      time.Duration // Added to the audio position
	Delay       time.Duration // Silence before playback starts
	FramePeriod time.Duration
	MinInterval time.Duration // Frames closer than this are skipped
	Volume      float64

	Journal  string
	Replay   string // Journal id, or "latest"
	LogFile  string
	LogLevel string
}

func Default() Config {
	rules := session.DefaultConfig().Rules
	return Config{
		Difficulty:       "normal",
		JudgmentRange:    rules.JudgmentRange,
		MissThreshold:    rules.MissThreshold,
		TargetScore:      rules.TargetScore,
		FallbackDuration: 30 * time.Second,
		Delay:            1500 * time.Millisecond,
		FramePeriod:      time.Second / 60,
		MinInterval:      16 * time.Millisecond,
		Journal:          "./journal.db",
		LogFile:          "./hoshi.log",
		LogLevel:         "info",
	}
}

// Parse reads the command line. Seed 0 means a new seed per round.
func Parse(args []string) (Config, error) {
	c := Default()
	app := kingpin.New("hoshi", "Tap falling stars and hearts in time with any song")
	app.Version(Version)

	app.Arg("track", "Audio file (.mp3, .ogg, .wav)").StringVar(&c.Track)
	app.Flag("seed", "Chart seed, 0 picks one").Short('s').Int64Var(&c.Seed)
	app.Flag("difficulty", "Chart difficulty").Short('D').Default(c.Difficulty).EnumVar(&c.Difficulty, chart.Names()...)
	app.Flag("range", "Judgment range in pixels").Default("120").Float64Var(&c.JudgmentRange)
	app.Flag("miss-threshold", "Pixels past the line before a note expires").Default("50").Float64Var(&c.MissThreshold)
	app.Flag("target", "Score needed to clear").Default("1000").IntVar(&c.TargetScore)
	app.Flag("fallback-duration", "Round length when the track length is unknown").Default("30s").DurationVar(&c.FallbackDuration)
	app.Flag("offset", "Global offset").Short('o').Default("0ms").DurationVar(&c.Offset)
	app.Flag("delay", "Start delay").Short('d').Default("1.5s").DurationVar(&c.Delay)
	app.Flag("frame-period", "Render frame period").Short('p').Default("16.666ms").DurationVar(&c.FramePeriod)
	app.Flag("min-interval", "Skip frames closer together than this").Default("16ms").DurationVar(&c.MinInterval)
	app.Flag("volume", "Volume change, 0 keeps the track as is").Default("0").Float64Var(&c.Volume)
	app.Flag("journal", "Replay journal database").Default(c.Journal).StringVar(&c.Journal)
	app.Flag("replay", "Replay a journal by id, or latest").StringVar(&c.Replay)
	app.Flag("log", "Log file").Default(c.LogFile).StringVar(&c.LogFile)
	app.Flag("log-level", "Log level").Default(c.LogLevel).EnumVar(&c.LogLevel, "debug", "info", "warn", "error")

	if _, err := app.Parse(args); nil != err {
		return c, err
	}
	if c.Track == "" && c.Replay == "" {
		return c, errors.New("a track is required unless replaying")
	}
	return c, nil
}

// Session builds the round configuration for a resolved seed and duration
func (c Config) Session(seed int64, duration time.Duration) session.Config {
	s := session.DefaultConfig()
	if d, ok := chart.Lookup(c.Difficulty); ok {
		s.Difficulty = d
	}
	s.Seed = seed
	s.Duration = duration
	s.FallbackDuration = c.FallbackDuration
	s.Rules.JudgmentRange = c.JudgmentRange
	s.Rules.MissThreshold = c.MissThreshold
	s.Rules.TargetScore = c.TargetScore
	return s
}

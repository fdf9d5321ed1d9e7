package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]string{"song.ogg"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Track != "song.ogg" || c.Difficulty != "normal" || c.JudgmentRange != 120 || c.TargetScore != 1000 {
		t.Fatalf("%+v", c)
	}
	if c.Delay != 1500*time.Millisecond || c.FallbackDuration != 30*time.Second {
		t.Fatalf("%+v", c)
	}
}

func TestParseFlags(t *testing.T) {
	c, err := Parse([]string{"-D", "hard", "--seed", "77", "--range", "80", "--target", "1500", "song.mp3"})
	if nil != err {
		t.Fatal(err)
	}
	s := c.Session(c.Seed, 90*time.Second)
	if s.Difficulty.Name != "hard" || s.Seed != 77 || s.Rules.JudgmentRange != 80 || s.Rules.TargetScore != 1500 || s.Duration != 90*time.Second {
		t.Fatalf("%+v", s)
	}
}

func TestParseErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-D", "impossible", "song.mp3"},
		{"--range", "wide", "song.mp3"},
	} {
		if _, err := Parse(args); nil == err {
			t.Errorf("%v: expected error", args)
		}
	}
	if c, err := Parse([]string{"--replay", "latest"}); nil != err || c.Replay != "latest" {
		t.Fatalf("%+v %v", c, err)
	}
}

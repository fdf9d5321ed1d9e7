// Package track decodes the audio file a round is played to. The core only
// needs its duration and playback position.
package track

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/hoshi/internal/clock"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

var ErrUnsupported = errors.New("unsupported audio format")

type Track struct {
	Path     string
	Format   beep.Format
	streamer beep.StreamSeekCloser
}

func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".ogg", ".wav":
		return true
	}
	return false
}

func Open(path string) (*Track, error) {
	if !Supported(path) {
		return nil, errors.Wrapf(ErrUnsupported, "%v", path)
	}
	f, err := os.Open(path)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open track")
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if nil != err {
		f.Close()
		return nil, errors.Wrapf(err, "unable to decode %v", path)
	}
	return &Track{Path: path, Format: format, streamer: streamer}, nil
}

// Duration is 0 when the stream cannot report its length
func (t *Track) Duration() time.Duration {
	n := t.streamer.Len()
	if n <= 0 || t.Format.SampleRate <= 0 {
		return 0
	}
	return t.Format.SampleRate.D(n)
}

// Clock follows the playback position of this track
func (t *Track) Clock(offset time.Duration) *clock.Stream {
	return &clock.Stream{Streamer: t.streamer, Format: t.Format, Offset: offset}
}

// Play starts the speaker after delay. Volume is in powers of two, 0 leaves
// the track untouched.
func (t *Track) Play(delay time.Duration, volume float64) error {
	if err := speaker.Init(t.Format.SampleRate, t.Format.SampleRate.N(time.Second/60)); nil != err {
		return errors.Wrap(err, "unable to initialise speaker")
	}
	var s beep.Streamer = t.streamer
	if volume != 0 {
		s = &effects.Volume{Streamer: t.streamer, Base: 2, Volume: volume}
	}
	if delay > 0 {
		s = beep.Seq(beep.Silence(t.Format.SampleRate.N(delay)), s)
	}
	speaker.Play(s)
	return nil
}

func (t *Track) Stop() {
	speaker.Clear()
}

func (t *Track) Close() error {
	return t.streamer.Close()
}

package clock

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

// Stream follows the playback position of a streamer handed to the speaker,
// so notes stay in sync with the audio even if playback stalls.
type Stream struct {
	Streamer beep.StreamSeeker
	Format   beep.Format
	Offset   time.Duration // Global offset added to the audio position
}

func (s *Stream) position() (pos, length int) {
	speaker.Lock()
	defer speaker.Unlock()
	return s.Streamer.Position(), s.Streamer.Len()
}

// Now is the audio position plus the offset. Once the stream is drained a
// negative offset no longer applies, the end of the track is the end.
func (s *Stream) Now() time.Duration {
	pos, length := s.position()
	now := s.Format.SampleRate.D(pos) + s.Offset
	if length > 0 && pos >= length {
		if end := s.Format.SampleRate.D(length); now < end {
			return end
		}
	}
	return now
}

func (s *Stream) Finished() bool {
	pos, length := s.position()
	return length > 0 && pos >= length
}

func (s *Stream) Reset() error {
	speaker.Lock()
	err := s.Streamer.Seek(0)
	speaker.Unlock()
	return errors.Wrap(err, "unable to rewind track")
}

package input

import (
	"context"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Listen reads the keyboard until ctx is done and sends lane taps and quit
// requests to events. Bursts are passed on as they come, the judge handles
// repeated taps.
func Listen(ctx context.Context, events chan<- Event, log logrus.FieldLogger) error {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return errors.Wrap(err, "unable to open keyboard")
	}

	go func() {
		defer func() {
			if err := keyboard.Close(); nil != err {
				log.WithError(err).Warn("unable to close keyboard")
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case key, ok := <-keys:
				if !ok {
					return
				}
				if nil != key.Err {
					log.WithError(key.Err).Warn("unable to read keyboard input")
					continue
				}
				ev, ok := translate(key)
				if !ok {
					log.WithField("rune", string(key.Rune)).Debug("key not mapped")
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return nil
}

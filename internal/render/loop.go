package render

import (
	"context"
	"time"
)

const (
	DefaultPeriod      = time.Second / 60
	DefaultMinInterval = 16 * time.Millisecond
)

// Loop calls a frame function at a fixed period. A wakeup that lands less
// than MinInterval after the last frame is skipped.
type Loop struct {
	Period      time.Duration
	MinInterval time.Duration

	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

func NewLoop(period, minInterval time.Duration) *Loop {
	if period <= 0 {
		period = DefaultPeriod
	}
	if minInterval < 0 {
		minInterval = 0
	}
	return &Loop{
		Period:      period,
		MinInterval: minInterval,
		now:         time.Now,
		sleep:       sleepContext,
	}
}

// Run blocks until frame returns false or ctx is done. It returns the number
// of frames rendered and skipped.
func (l *Loop) Run(ctx context.Context, frame func(now time.Time) bool) (rendered, skipped int) {
	var last time.Time
	for {
		if nil != ctx.Err() {
			return
		}
		now := l.now()
		deadline := now.Add(l.Period)

		if !last.IsZero() && now.Sub(last) < l.MinInterval {
			skipped++
		} else {
			last = now
			rendered++
			if !frame(now) {
				return
			}
		}

		l.sleep(ctx, deadline.Sub(l.now()))
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

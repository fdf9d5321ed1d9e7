package score

import (
	"math"

	"git.lost.host/meutraa/hoshi/internal/game"
	"github.com/pkg/errors"
)

var ErrLaneOutOfRange = errors.New("lane out of range")

// Scorer judges a chart whose positions were projected for the current tick
type Scorer interface {
	// Sweep expires every note past the miss threshold
	Sweep(chart *game.Chart, tally *Tally) []Event

	// Tap judges one input on a lane against the latest positions
	Tap(chart *game.Chart, lane int, tally *Tally) (Event, error)
}

type Judge struct {
	Rules        Rules
	JudgmentLine float64
}

func NewJudge(rules Rules, judgmentLine float64) *Judge {
	return &Judge{Rules: rules, JudgmentLine: judgmentLine}
}

func (j *Judge) expired(n *game.Note) bool {
	return n.Y > j.JudgmentLine+j.Rules.MissThreshold
}

func (j *Judge) Sweep(chart *game.Chart, tally *Tally) []Event {
	dropped := chart.Filter(func(n *game.Note) bool { return !j.expired(n) })
	if len(dropped) == 0 {
		return nil
	}
	events := make([]Event, 0, len(dropped))
	for _, n := range dropped {
		applied := tally.Penalize(j.Rules.ExpiryPenalty)
		tally.Break()
		events = append(events, MissResolved{
			Reason:     Expired,
			Lane:       n.Lane,
			Note:       n,
			Penalty:    j.Rules.ExpiryPenalty,
			Applied:    applied,
			ScoreAfter: tally.Score,
		})
	}
	return events
}

// closest returns the note in lane nearest the line within range. Notes are
// scanned in arrival order and only a strictly closer note replaces the
// current pick, so the earliest note wins a tie.
func (j *Judge) closest(chart *game.Chart, lane int) *game.Note {
	var pick *game.Note
	best := j.Rules.JudgmentRange
	for _, n := range chart.Notes {
		if n.Lane != lane {
			continue
		}
		if d := n.Distance(j.JudgmentLine); d < best {
			best = d
			pick = n
		}
	}
	return pick
}

func (j *Judge) Tap(chart *game.Chart, lane int, tally *Tally) (Event, error) {
	if !game.ValidLane(lane) {
		return nil, errors.Wrapf(ErrLaneOutOfRange, "lane %d", lane)
	}

	note := j.closest(chart, lane)
	if note == nil {
		applied := tally.Penalize(j.Rules.TapPenalty)
		tally.Break()
		return MissResolved{
			Reason:     Tapped,
			Lane:       lane,
			Penalty:    j.Rules.TapPenalty,
			Applied:    applied,
			ScoreAfter: tally.Score,
		}, nil
	}

	chart.Remove(note.ID)
	return j.hit(note, tally), nil
}

func (j *Judge) hit(note *game.Note, tally *Tally) HitResolved {
	base := j.Rules.StarPoints
	if note.Kind.IsHeart() {
		base = j.Rules.HeartPoints
	}

	combo := tally.Hit()
	points := base
	if j.Rules.ComboThreshold > 0 && combo >= j.Rules.ComboThreshold {
		points = int(math.Floor(float64(base) * j.Rules.ComboMultiplier))
	}

	colorCombo, bonus := 0, 0
	if note.Kind.IsHeart() {
		colorCombo = tally.HitColor(note.Kind.Color)
		bonus = j.Rules.ColorMilestones[colorCombo]
	}

	tally.Add(points + bonus)
	return HitResolved{
		Note:            note,
		Points:          points,
		Bonus:           bonus,
		ComboAfter:      combo,
		ColorComboAfter: colorCombo,
		ScoreAfter:      tally.Score,
	}
}

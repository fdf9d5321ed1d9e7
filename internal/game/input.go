package game

import "time"

// Input is one tap on a lane. Time is the elapsed time of the positions it
// was judged against.
type Input struct {
	Lane int
	Time time.Duration
}

package game

import (
	"time"

	"github.com/google/uuid"
)

// LaneCount is the number of parallel input channels
const LaneCount = 4

type Note struct {
	ID   uuid.UUID
	Lane int           // The lane, 0 to LaneCount-1
	Time time.Duration // The time the note should cross the judgment line
	Kind Kind

	// This is state
	Y float64 // The projected screen coordinate for the latest tick
}

func ValidLane(lane int) bool {
	return lane >= 0 && lane < LaneCount
}

// Distance from the given line, always positive
func (n *Note) Distance(line float64) float64 {
	d := n.Y - line
	if d < 0 {
		return -d
	}
	return d
}

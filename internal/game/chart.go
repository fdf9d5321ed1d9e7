package game

import "github.com/google/uuid"

// Chart is the active note set of a round. Notes are kept in creation order,
// which is also the arrival order used to break judgment ties.
type Chart struct {
	Notes []*Note

	NoteCount  int
	HeartCount int
}

func NewChart(notes []*Note) *Chart {
	c := &Chart{Notes: notes, NoteCount: len(notes)}
	for _, n := range notes {
		if n.Kind.IsHeart() {
			c.HeartCount++
		}
	}
	return c
}

// Remaining is the number of notes not yet hit or expired
func (c *Chart) Remaining() int {
	return len(c.Notes)
}

// Remove drops the note with the given id, reporting whether it was present.
// A note can only ever be removed once.
func (c *Chart) Remove(id uuid.UUID) bool {
	for i, n := range c.Notes {
		if n.ID != id {
			continue
		}
		copy(c.Notes[i:], c.Notes[i+1:])
		c.Notes[len(c.Notes)-1] = nil
		c.Notes = c.Notes[:len(c.Notes)-1]
		return true
	}
	return false
}

// Filter keeps the notes for which keep returns true and returns the rest,
// preserving order in both.
func (c *Chart) Filter(keep func(n *Note) bool) []*Note {
	kept := c.Notes[:0]
	var dropped []*Note
	for _, n := range c.Notes {
		if keep(n) {
			kept = append(kept, n)
		} else {
			dropped = append(dropped, n)
		}
	}
	for i := len(kept); i < len(c.Notes); i++ {
		c.Notes[i] = nil
	}
	c.Notes = kept
	return dropped
}

package input

import (
	"unicode"

	"github.com/eiannone/keyboard"
)

// Two fixed key sets, home row and number row
var laneKeys = map[rune]int{
	'a': 0, 's': 1, 'd': 2, 'f': 3,
	'1': 0, '2': 1, '3': 2, '4': 3,
}

func Lane(r rune) (int, bool) {
	lane, ok := laneKeys[unicode.ToLower(r)]
	return lane, ok
}

type Event struct {
	Lane int
	Quit bool
}

// translate maps a raw key press, reporting false for keys that mean nothing
func translate(ev keyboard.KeyEvent) (Event, bool) {
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Event{Quit: true}, true
	}
	lane, ok := Lane(ev.Rune)
	if !ok {
		return Event{}, false
	}
	return Event{Lane: lane}, true
}

package game

import "fmt"

type Shape uint8

const (
	Star Shape = iota
	Heart
)

type Color uint8

const (
	None Color = iota
	Red
	Green
	Blue
	Yellow
	Purple
)

// Colors lists every heart color in a fixed order
var Colors = [...]Color{Red, Green, Blue, Yellow, Purple}

var colorNames = map[Color]string{
	None:   "none",
	Red:    "red",
	Green:  "green",
	Blue:   "blue",
	Yellow: "yellow",
	Purple: "purple",
}

func (c Color) String() string {
	name, ok := colorNames[c]
	if !ok {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return name
}

// Kind only affects score weight and presentation, never timing
type Kind struct {
	Shape Shape
	Color Color // None for stars
}

func StarKind() Kind {
	return Kind{Shape: Star}
}

func HeartKind(c Color) Kind {
	return Kind{Shape: Heart, Color: c}
}

func (k Kind) IsHeart() bool {
	return k.Shape == Heart
}

func (k Kind) String() string {
	if k.IsHeart() {
		return k.Color.String() + " heart"
	}
	return "star"
}

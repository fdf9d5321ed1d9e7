package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/hoshi/internal/game"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(kind game.Kind) string {
	if kind.IsHeart() {
		return paint(getColor(kind.Color), heartSym)
	}
	return paint(getColor(game.None), starSym)
}

func (t *DefaultTheme) RenderHitField(lane int) string {
	return barSyms[lane%len(barSyms)]
}

func (t *DefaultTheme) RenderHit(kind game.Kind) string {
	return paint(getColor(kind.Color), hitSym)
}

func (t *DefaultTheme) RenderMiss() string {
	return "\033[1;31m" + missSym + "\033[0m"
}

func (t *DefaultTheme) GetColor(c game.Color) color.RGBA {
	return getColor(c)
}

const (
	starSym  = "★"
	heartSym = "♥"
	hitSym   = "✦"
	missSym  = "✗"
)

var (
	barSyms     = [...]string{"═", "═", "═", "═"}
	heartColors = map[game.Color]color.RGBA{
		game.Red:    {236, 30, 0, 255},
		game.Green:  {0, 236, 128, 255},
		game.Blue:   {0, 118, 236, 255},
		game.Yellow: {236, 195, 0, 255},
		game.Purple: {106, 0, 236, 255},
		game.None:   {255, 255, 255, 255}, // stars
	}
)

func getColor(c game.Color) color.RGBA {
	col, ok := heartColors[c]
	if !ok {
		return heartColors[game.None]
	}
	return col
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

package theme

import (
	"image/color"

	"git.lost.host/meutraa/hoshi/internal/game"
)

type Theme interface {
	RenderNote(kind game.Kind) string
	RenderHitField(lane int) string
	RenderHit(kind game.Kind) string
	RenderMiss() string
	GetColor(c game.Color) color.RGBA
}

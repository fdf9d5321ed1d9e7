package render

import (
	"image/color"

	"git.lost.host/meutraa/hoshi/internal/score"
	"git.lost.host/meutraa/hoshi/internal/session"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(col, row uint16, content string, frames int)
	Fill(row, column uint16, message string)
	FillColor(row, column uint16, color color.RGBA, message string)
	Draw(snap session.Snapshot)
	OnEvent(ev score.Event)
}

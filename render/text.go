package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2

	"github.com/automoto/mapscene/fonts"
	"github.com/automoto/mapscene/scene"
)

func (r *Renderer) drawLabel(screen *ebiten.Image, l scene.TextLabel, camX, camY float64) {
	face := fonts.Face(fonts.Style{Bold: l.Bold, Italic: l.Italic}, float64(l.Size))
	bounds := text.BoundString(face, l.Value) //nolint:staticcheck // TODO: migrate to text/v2
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	x, y := l.Pos.X, l.Pos.Y
	if l.Bounds.W > 0 || l.Bounds.H > 0 {
		x, y = alignInBox(l, w, h)
	}

	// text.Draw positions the baseline origin; shift by the string bounds so
	// (x, y) is the visual top-left.
	text.Draw(screen, l.Value, face, int(x-camX)-bounds.Min.X, int(y-camY)-bounds.Min.Y, l.Color)
}

func alignInBox(l scene.TextLabel, w, h float64) (x, y float64) {
	x, y = l.Bounds.X, l.Bounds.Y
	switch l.HAlign {
	case scene.AlignCenter:
		x += (l.Bounds.W - w) / 2
	case scene.AlignRight:
		x += l.Bounds.W - w
	}
	switch l.VAlign {
	case scene.AlignCenter:
		y += (l.Bounds.H - h) / 2
	case scene.AlignBottom:
		y += l.Bounds.H - h
	}
	return x, y
}

// Package render draws a loaded scene with ebiten. It owns the GPU copies
// of the tileset atlases; the scene itself stays free of rendering state, so
// a Renderer can be dropped and rebuilt (on reload) without touching the
// scene data.
package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/mapscene/scene"
)

// Renderer uploads each tileset atlas once and draws the scene's quad list
// and text labels.
type Renderer struct {
	scene   *scene.Scene
	atlases []*ebiten.Image
	tiles   map[tileKey]*ebiten.Image
}

type tileKey struct {
	tileset int
	src     image.Rectangle
}

// New builds a renderer for s, uploading every usable tileset atlas.
func New(s *scene.Scene) *Renderer {
	r := &Renderer{
		scene: s,
		tiles: map[tileKey]*ebiten.Image{},
	}
	for _, ts := range s.Tilesets() {
		if ts.Image == nil {
			r.atlases = append(r.atlases, nil)
			continue
		}
		r.atlases = append(r.atlases, ebiten.NewImageFromImage(ts.Image))
	}
	return r
}

// Draw renders the scene with the camera at (camX, camY) map pixels.
func (r *Renderer) Draw(screen *ebiten.Image, camX, camY float64) {
	for _, q := range r.scene.Quads() {
		img := r.tile(q)
		if img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(q.Pos.X-camX, q.Pos.Y-camY)
		op.ColorScale.ScaleAlpha(float32(q.Opacity))
		screen.DrawImage(img, op)
	}
	for _, l := range r.scene.Labels() {
		r.drawLabel(screen, l, camX, camY)
	}
}

// tile returns the cached sub-image for a quad's atlas cell. One sub-image
// per distinct (tileset, src) pair, shared across all quads using that tile.
func (r *Renderer) tile(q scene.TileQuad) *ebiten.Image {
	key := tileKey{tileset: q.Tileset, src: q.Src}
	if img, ok := r.tiles[key]; ok {
		return img
	}
	atlas := r.atlases[q.Tileset]
	if atlas == nil {
		return nil
	}
	img := atlas.SubImage(q.Src).(*ebiten.Image)
	r.tiles[key] = img
	return img
}

// Dispose releases the uploaded atlases. The renderer must not be used
// afterwards.
func (r *Renderer) Dispose() {
	for _, img := range r.atlases {
		if img != nil {
			img.Deallocate()
		}
	}
	r.atlases = nil
	r.tiles = nil
}

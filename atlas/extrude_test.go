package atlas

import (
	"image"
	"image/color"
	"testing"
)

// buildTileset draws a columns x rows grid where every tile is filled with a
// color unique to its cell, so any cross-tile bleed is detectable.
func buildTileset(tileW, tileH, columns, rows, spacing, margin int) *image.RGBA {
	w := 2*margin + columns*tileW + (columns-1)*spacing
	h := 2*margin + rows*tileH + (rows-1)*spacing
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			c := color.RGBA{R: uint8(10 + col*40), G: uint8(10 + row*40), B: 200, A: 255}
			x0 := margin + col*(tileW+spacing)
			y0 := margin + row*(tileH+spacing)
			for y := 0; y < tileH; y++ {
				for x := 0; x < tileW; x++ {
					// Perturb per pixel so edges differ from interiors.
					px := c
					px.B = uint8(int(px.B) + x + y*tileW)
					img.SetRGBA(x0+x, y0+y, px)
				}
			}
		}
	}
	return img
}

func TestExtrudeRejectsBadGeometry(t *testing.T) {
	src := buildTileset(8, 8, 2, 2, 0, 0)
	tests := []struct {
		name string
		p    Params
	}{
		{"zero tile width", Params{TileWidth: 0, TileHeight: 8, Columns: 2}},
		{"negative tile height", Params{TileWidth: 8, TileHeight: -1, Columns: 2}},
		{"zero columns", Params{TileWidth: 8, TileHeight: 8, Columns: 0}},
		{"negative border", Params{TileWidth: 8, TileHeight: 8, Columns: 2, Border: -1}},
		{"margin eats the image", Params{TileWidth: 8, TileHeight: 8, Columns: 2, Margin: 50}},
	}
	for _, tt := range tests {
		if _, err := Extrude(src, tt.p); err == nil {
			t.Errorf("%s: Extrude succeeded, want error", tt.name)
		}
	}
}

func TestExtrudePitch(t *testing.T) {
	p := Params{TileWidth: 16, TileHeight: 12, Border: 3}
	w, h := p.Pitch()
	if w != 22 || h != 18 {
		t.Errorf("Pitch() = (%d, %d), want (22, 18)", w, h)
	}
}

func TestExtrudeOutputSize(t *testing.T) {
	src := buildTileset(8, 8, 3, 2, 2, 1)
	p := Params{TileWidth: 8, TileHeight: 8, Columns: 3, Spacing: 2, Margin: 1, Border: 2}
	dst, err := Extrude(src, p)
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	if got, want := dst.Bounds().Dx(), 3*12; got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
	if got, want := dst.Bounds().Dy(), 2*12; got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
}

// Every border pixel must equal the nearest edge or corner pixel of its own
// tile, for all border widths 0 through 4.
func TestExtrudeBorderReplicatesOwnTile(t *testing.T) {
	const tileW, tileH, columns, rows = 6, 5, 3, 2
	src := buildTileset(tileW, tileH, columns, rows, 1, 2)

	for border := 0; border <= 4; border++ {
		p := Params{TileWidth: tileW, TileHeight: tileH, Columns: columns, Spacing: 1, Margin: 2, Border: border}
		dst, err := Extrude(src, p)
		if err != nil {
			t.Fatalf("border %d: Extrude: %v", border, err)
		}
		pitchW, pitchH := p.Pitch()
		for row := 0; row < rows; row++ {
			for col := 0; col < columns; col++ {
				srcX := 2 + col*(tileW+1)
				srcY := 2 + row*(tileH+1)
				for dy := 0; dy < pitchH; dy++ {
					for dx := 0; dx < pitchW; dx++ {
						// Clamp to the tile interior: that's the pixel the
						// border position must replicate.
						ix := clampInt(dx-border, 0, tileW-1)
						iy := clampInt(dy-border, 0, tileH-1)
						want := src.RGBAAt(srcX+ix, srcY+iy)
						got := dst.RGBAAt(col*pitchW+dx, row*pitchH+dy)
						if got != want {
							t.Fatalf("border %d tile (%d,%d) at (%d,%d): got %v, want %v",
								border, col, row, dx, dy, got, want)
						}
					}
				}
			}
		}
	}
}

func TestExtrudeOutOfBoundsReadsTransparent(t *testing.T) {
	// Claim two columns over an image wide enough for one: the second tile
	// reads entirely outside the source and must come out transparent,
	// border included.
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	p := Params{TileWidth: 8, TileHeight: 8, Columns: 2, Border: 1}
	dst, err := Extrude(src, p)
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	pitchW, pitchH := p.Pitch()
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("first tile pixel = %v, want opaque red", got)
	}
	for y := 0; y < pitchH; y++ {
		for x := pitchW; x < 2*pitchW; x++ {
			if got := dst.RGBAAt(x, y); got != (color.RGBA{}) {
				t.Fatalf("out-of-source tile at (%d,%d) = %v, want transparent", x, y, got)
			}
		}
	}
}

func TestExtrudeDoesNotTouchSource(t *testing.T) {
	src := buildTileset(4, 4, 2, 2, 0, 0)
	before := append([]uint8(nil), src.Pix...)
	if _, err := Extrude(src, Params{TileWidth: 4, TileHeight: 4, Columns: 2, Border: 2}); err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	for i := range before {
		if src.Pix[i] != before[i] {
			t.Fatalf("source pixel data modified at byte %d", i)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

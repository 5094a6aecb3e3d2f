// Package atlas rebuilds tileset images so that every tile carries a border
// of replicated edge pixels. Scaled or filtered tile rendering samples just
// outside a tile's texel rectangle; without the border those samples land on
// the neighboring tile and show up as seams. Replication copies pixels
// exactly, never blends, so no new colors appear.
package atlas

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Params describes the grid layout of a source tileset image and the border
// width to extrude by.
type Params struct {
	TileWidth  int
	TileHeight int
	Columns    int
	Spacing    int
	Margin     int
	Border     int
}

// Pitch returns the effective tile size in the extruded atlas. Tiles in the
// output are contiguous: spacing and margin collapse to zero.
func (p Params) Pitch() (w, h int) {
	return p.TileWidth + 2*p.Border, p.TileHeight + 2*p.Border
}

// Rows computes how many tile rows the source image holds, or 0 if the
// geometry is inconsistent.
func (p Params) Rows(srcHeight int) int {
	if p.TileHeight <= 0 {
		return 0
	}
	usable := srcHeight - 2*p.Margin + p.Spacing
	if usable <= 0 {
		return 0
	}
	return usable / (p.TileHeight + p.Spacing)
}

// Extrude returns a new atlas in which every tile of src is padded by
// p.Border pixels of replicated edge and corner pixels on each side. The
// source image is not modified. Reads outside the source bounds come back
// fully transparent.
func Extrude(src image.Image, p Params) (*image.RGBA, error) {
	if p.TileWidth <= 0 || p.TileHeight <= 0 {
		return nil, fmt.Errorf("extrude: invalid tile size %dx%d", p.TileWidth, p.TileHeight)
	}
	if p.Columns <= 0 {
		return nil, fmt.Errorf("extrude: invalid column count %d", p.Columns)
	}
	if p.Border < 0 {
		return nil, fmt.Errorf("extrude: negative border %d", p.Border)
	}
	rows := p.Rows(src.Bounds().Dy())
	if rows <= 0 {
		return nil, fmt.Errorf("extrude: source height %d yields no tile rows", src.Bounds().Dy())
	}

	pitchW, pitchH := p.Pitch()
	dst := image.NewRGBA(image.Rect(0, 0, p.Columns*pitchW, rows*pitchH))

	srcMin := src.Bounds().Min
	for row := 0; row < rows; row++ {
		for col := 0; col < p.Columns; col++ {
			srcX := srcMin.X + p.Margin + col*(p.TileWidth+p.Spacing)
			srcY := srcMin.Y + p.Margin + row*(p.TileHeight+p.Spacing)
			dstX := col*pitchW + p.Border
			dstY := row*pitchH + p.Border

			// Tile block. Copy clips against the source bounds, so
			// out-of-range texels stay transparent in dst.
			sr := image.Rect(srcX, srcY, srcX+p.TileWidth, srcY+p.TileHeight)
			xdraw.Copy(dst, image.Pt(dstX, dstY), src, sr, xdraw.Src, nil)

			if p.Border > 0 {
				extrudeTile(dst, dstX, dstY, p.TileWidth, p.TileHeight, p.Border)
			}
		}
	}
	return dst, nil
}

// extrudeTile replicates the tile block at (x,y) outward into its border
// strips. It reads from dst itself: the tile block was copied first, so the
// interior edge pixels (including transparent ones from clipped reads) are
// authoritative.
func extrudeTile(dst *image.RGBA, x, y, w, h, border int) {
	// Left and right columns.
	for ty := 0; ty < h; ty++ {
		left := dst.RGBAAt(x, y+ty)
		right := dst.RGBAAt(x+w-1, y+ty)
		for i := 1; i <= border; i++ {
			dst.SetRGBA(x-i, y+ty, left)
			dst.SetRGBA(x+w-1+i, y+ty, right)
		}
	}
	// Top and bottom rows.
	for tx := 0; tx < w; tx++ {
		top := dst.RGBAAt(x+tx, y)
		bottom := dst.RGBAAt(x+tx, y+h-1)
		for i := 1; i <= border; i++ {
			dst.SetRGBA(x+tx, y-i, top)
			dst.SetRGBA(x+tx, y+h-1+i, bottom)
		}
	}
	// Corner blocks.
	tl := dst.RGBAAt(x, y)
	tr := dst.RGBAAt(x+w-1, y)
	bl := dst.RGBAAt(x, y+h-1)
	br := dst.RGBAAt(x+w-1, y+h-1)
	for i := 1; i <= border; i++ {
		for j := 1; j <= border; j++ {
			dst.SetRGBA(x-j, y-i, tl)
			dst.SetRGBA(x+w-1+j, y-i, tr)
			dst.SetRGBA(x-j, y+h-1+i, bl)
			dst.SetRGBA(x+w-1+j, y+h-1+i, br)
		}
	}
}

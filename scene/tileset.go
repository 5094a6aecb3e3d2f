package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/automoto/mapscene/atlas"
	"github.com/automoto/mapscene/mapdoc"
)

// Tileset is one registered tileset: its global-ID range, grid layout and
// atlas image. Geometry fields hold the effective (post-extrusion) values;
// the Src* fields keep the pre-extrusion ones. A nil Image means the tileset
// registered without a usable atlas and never resolves tiles.
type Tileset struct {
	Name      string
	FirstGID  int
	TileCount int
	Columns   int

	TileWidth  int
	TileHeight int
	Spacing    int
	Margin     int
	Border     int

	SrcTileWidth  int
	SrcTileHeight int
	SrcSpacing    int
	SrcMargin     int

	Image image.Image
}

func (t *Tileset) contains(gid int) bool {
	return t.TileCount > 0 && gid >= t.FirstGID && gid < t.FirstGID+t.TileCount
}

// SrcRect returns the atlas sub-rectangle holding local tile index i,
// excluding any extruded border. Quads sample this inner rect; the border
// exists only for the sampler to bleed into.
func (t *Tileset) SrcRect(i int) image.Rectangle {
	col := i % t.Columns
	row := i / t.Columns
	x := t.Margin + col*(t.TileWidth+t.Spacing) + t.Border
	y := t.Margin + row*(t.TileHeight+t.Spacing) + t.Border
	return image.Rect(x, y, x+t.SrcTileWidth, y+t.SrcTileHeight)
}

// registerTileset loads the tileset's image (relative to baseDir), runs
// extrusion when requested, and appends the entry. Entries register even
// when their image is missing or unreadable so that registration order and
// GID ranges never shift; such entries just never resolve.
func (s *Scene) registerTileset(desc mapdoc.Tileset, baseDir string, border int) {
	t := &Tileset{
		Name:          desc.Name,
		FirstGID:      desc.FirstGID,
		TileCount:     desc.TileCount,
		Columns:       desc.Columns,
		TileWidth:     desc.TileWidth,
		TileHeight:    desc.TileHeight,
		Spacing:       desc.Spacing,
		Margin:        desc.Margin,
		SrcTileWidth:  desc.TileWidth,
		SrcTileHeight: desc.TileHeight,
		SrcSpacing:    desc.Spacing,
		SrcMargin:     desc.Margin,
	}
	s.tilesets = append(s.tilesets, t)

	if desc.Image == "" {
		return
	}
	img, err := loadImage(filepath.Join(baseDir, desc.Image))
	if err != nil {
		s.logf("Warning: tileset %q: %v", desc.Name, err)
		return
	}

	if t.Columns <= 0 && t.SrcTileWidth > 0 {
		t.Columns = (img.Bounds().Dx() - 2*t.SrcMargin + t.SrcSpacing) / (t.SrcTileWidth + t.SrcSpacing)
	}
	if t.Columns <= 0 {
		s.logf("Warning: tileset %q: cannot determine column count", desc.Name)
		return
	}
	p := atlas.Params{
		TileWidth:  t.SrcTileWidth,
		TileHeight: t.SrcTileHeight,
		Columns:    t.Columns,
		Spacing:    t.SrcSpacing,
		Margin:     t.SrcMargin,
		Border:     border,
	}
	if t.TileCount <= 0 {
		t.TileCount = t.Columns * p.Rows(img.Bounds().Dy())
	}

	t.Image = img
	if border <= 0 {
		return
	}
	extruded, err := atlas.Extrude(img, p)
	if err != nil {
		// Keep the original atlas; seams beat no tiles at all.
		s.logf("Warning: tileset %q: extrusion failed, using original atlas: %v", desc.Name, err)
		return
	}
	t.Image = extruded
	t.TileWidth, t.TileHeight = p.Pitch()
	t.Spacing = 0
	t.Margin = 0
	t.Border = border
}

// resolveGID finds the tileset owning gid and the local tile index within
// it. Among tilesets whose ranges overlap the ID, the one with the largest
// FirstGID wins, which keeps pathological documents deterministic. Tilesets
// without a usable atlas are skipped.
func (s *Scene) resolveGID(gid int) (tilesetIndex, localIndex int, ok bool) {
	if gid <= 0 {
		return 0, 0, false
	}
	best := -1
	for i, t := range s.tilesets {
		if t.Image == nil || !t.contains(gid) {
			continue
		}
		if best < 0 || t.FirstGID > s.tilesets[best].FirstGID {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, gid - s.tilesets[best].FirstGID, true
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

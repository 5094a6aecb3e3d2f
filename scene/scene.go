// Package scene turns a map document into an immutable in-memory scene:
// a flat ordered list of positioned tile quads, typed object collections and
// point-in-blocked-region queries. Load runs to completion synchronously;
// the returned Scene never mutates, so concurrent readers need no locking.
// Reloading a map means calling Load again and dropping the old Scene.
//
// The package carries no rendering dependencies; package render draws a
// Scene with ebiten.
package scene

import (
	"image"
	"log"

	"github.com/automoto/mapscene/geom"
)

// TileQuad is one drawable tile: which tileset atlas to sample, the source
// sub-rectangle inside it, the world position in pixels and the combined
// layer opacity.
type TileQuad struct {
	Tileset int
	Src     image.Rectangle
	Pos     geom.Point
	Opacity float64
}

// Scene is the parsed, immutable result of Load.
type Scene struct {
	name string

	mapWidth   int
	mapHeight  int
	tileWidth  int
	tileHeight int

	tilesets []*Tileset
	quads    []TileQuad

	labels   []TextLabel
	portals  []Portal
	counters []InteractionZone
	triggers []Trigger

	rectBlockers []geom.Rect
	polyBlockers []geom.Polygon

	docSpawn *geom.Point
	spawn    geom.Point

	logger *log.Logger
}

// Name is the map's name, the document file stem.
func (s *Scene) Name() string { return s.name }

// GridSize returns the map dimensions in tiles.
func (s *Scene) GridSize() (w, h int) { return s.mapWidth, s.mapHeight }

// TileSize returns the tile dimensions in pixels.
func (s *Scene) TileSize() (w, h int) { return s.tileWidth, s.tileHeight }

// PixelSize returns the map dimensions in pixels, for camera and viewport
// sizing.
func (s *Scene) PixelSize() (w, h int) {
	return s.mapWidth * s.tileWidth, s.mapHeight * s.tileHeight
}

// Tilesets returns the registered tilesets in registration order. TileQuad
// indices point into this slice.
func (s *Scene) Tilesets() []*Tileset { return s.tilesets }

// Quads returns the flattened tile list in draw order.
func (s *Scene) Quads() []TileQuad { return s.quads }

// Labels returns the parsed text labels.
func (s *Scene) Labels() []TextLabel { return s.labels }

// Portals returns the parsed entrances.
func (s *Scene) Portals() []Portal { return s.portals }

// Counters returns the parsed interaction zones.
func (s *Scene) Counters() []InteractionZone { return s.counters }

// Triggers returns the parsed scripted zones and actor anchors.
func (s *Scene) Triggers() []Trigger { return s.triggers }

// RectBlockers returns the rectangular non-walkable regions.
func (s *Scene) RectBlockers() []geom.Rect { return s.rectBlockers }

// PolygonBlockers returns the polygonal non-walkable regions.
func (s *Scene) PolygonBlockers() []geom.Polygon { return s.polyBlockers }

// Spawn returns the resolved spawn point. Precedence: caller override,
// sidecar override, in-document spawn, map center.
func (s *Scene) Spawn() geom.Point { return s.spawn }

// IsBlocked reports whether p lies inside any non-walkable region.
// Rectangles are checked first (edges inclusive), then polygons behind their
// cached bounding boxes. Pure read; safe for concurrent use.
func (s *Scene) IsBlocked(p geom.Point) bool {
	for _, r := range s.rectBlockers {
		if r.Contains(p) {
			return true
		}
	}
	for _, pg := range s.polyBlockers {
		if pg.Contains(p) {
			return true
		}
	}
	return false
}

func (s *Scene) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

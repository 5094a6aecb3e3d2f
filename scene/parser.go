package scene

import (
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/automoto/mapscene/geom"
	"github.com/automoto/mapscene/mapdoc"
)

// Options configures Load. The zero value loads a JSON map relative to its
// own directory with no extrusion, no sidecar and the default logger.
type Options struct {
	// BaseDir resolves tileset image paths. Empty means the document's own
	// directory.
	BaseDir string

	// Extrude is the border width in pixels added around every tile.
	Extrude int

	// SidecarPath points at an optional spawn-override file consulted after
	// parsing.
	SidecarPath string

	// SpawnOverride, when set, wins over every other spawn source.
	SpawnOverride *geom.Point

	// Logger receives advisory diagnostics. Nil uses the log default.
	Logger *log.Logger
}

// Load reads the map document at path and builds the scene. Files ending in
// .tmx go through the TMX front-end; everything else is read as JSON. Only
// malformed top-level documents fail; layer and object problems degrade to
// logged diagnostics.
func Load(path string, opts Options) (*Scene, error) {
	var (
		doc *mapdoc.Map
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".tmx") {
		doc, err = mapdoc.LoadTMX(path)
	} else {
		doc, err = mapdoc.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return build(doc, name, baseDir, opts)
}

func build(doc *mapdoc.Map, name, baseDir string, opts Options) (*Scene, error) {
	s := &Scene{
		name:       name,
		mapWidth:   doc.Width,
		mapHeight:  doc.Height,
		tileWidth:  doc.TileWidth,
		tileHeight: doc.TileHeight,
		logger:     opts.Logger,
	}

	for _, ts := range doc.Tilesets {
		s.registerTileset(ts, baseDir, opts.Extrude)
	}
	for i := range doc.Layers {
		s.visit(&doc.Layers[i], 0, 0, 1)
	}
	s.resolveSpawn(opts)
	return s, nil
}

// visit walks one layer node carrying the offset and opacity accumulated
// from enclosing groups.
func (s *Scene) visit(l *mapdoc.Layer, offX, offY, opacity float64) {
	switch l.Type {
	case mapdoc.TypeGroup:
		offX += l.OffsetX
		offY += l.OffsetY
		opacity *= l.EffectiveOpacity()
		for i := range l.Layers {
			s.visit(&l.Layers[i], offX, offY, opacity)
		}
	case mapdoc.TypeTileLayer:
		if !l.IsVisible() {
			return
		}
		s.flattenTiles(l, offX+l.OffsetX, offY+l.OffsetY, opacity*l.EffectiveOpacity())
	case mapdoc.TypeObjectGroup:
		s.dispatchObjects(l)
	default:
		s.logf("Warning: layer %q: unknown type %q, skipped", l.Name, l.Type)
	}
}

// flattenTiles emits one quad per resolvable non-zero cell. A data array
// whose length disagrees with the layer grid skips the whole layer; an
// unresolvable GID skips just that cell.
func (s *Scene) flattenTiles(l *mapdoc.Layer, offX, offY, opacity float64) {
	w, h := l.Width, l.Height
	if w <= 0 {
		w = s.mapWidth
	}
	if h <= 0 {
		h = s.mapHeight
	}
	if len(l.Data) != w*h {
		s.logf("Warning: layer %q: %d tiles for a %dx%d grid, layer skipped", l.Name, len(l.Data), w, h)
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gid := l.Data[y*w+x]
			if gid == 0 {
				continue
			}
			tsIdx, local, ok := s.resolveGID(gid)
			if !ok {
				continue
			}
			s.quads = append(s.quads, TileQuad{
				Tileset: tsIdx,
				Src:     s.tilesets[tsIdx].SrcRect(local),
				Pos: geom.Point{
					X: offX + float64(x*s.tileWidth),
					Y: offY + float64(y*s.tileHeight),
				},
				Opacity: opacity,
			})
		}
	}
}

// dispatchObjects routes every object of an object layer into its typed
// collection. Malformed objects are skipped with a diagnostic; the rest of
// the layer still parses.
func (s *Scene) dispatchObjects(l *mapdoc.Layer) {
	for i := range l.Objects {
		o := &l.Objects[i]
		kind, sub := classify(l.Name, o)
		switch kind {
		case kindSpawn:
			p := s.spawnCenter(o)
			s.docSpawn = &p
		case kindLabel:
			if label, ok := buildLabel(o); ok {
				s.labels = append(s.labels, label)
			} else {
				s.logf("Warning: layer %q: text object %d has no text, skipped", l.Name, o.ID)
			}
		case kindPortal:
			if portal, ok := buildPortal(o); ok {
				s.portals = append(s.portals, portal)
			} else {
				s.logf("Warning: layer %q: entrance object %d has no name, skipped", l.Name, o.ID)
			}
		case kindBlocker:
			s.addBlocker(l.Name, o)
		case kindCounter:
			if zone, ok := buildCounter(o); ok {
				s.counters = append(s.counters, zone)
			} else {
				s.logf("Warning: layer %q: counter object %d has no name, skipped", l.Name, o.ID)
			}
		case kindTrigger:
			s.triggers = append(s.triggers, buildTrigger(o, sub))
		}
	}
}

// spawnCenter is the rectangle center when the object has a size, otherwise
// the center of the tile cell containing the object's origin.
func (s *Scene) spawnCenter(o *mapdoc.Object) geom.Point {
	if o.Width > 0 || o.Height > 0 {
		return objectRect(o).Center()
	}
	tw, th := float64(s.tileWidth), float64(s.tileHeight)
	col := math.Floor(o.X / tw)
	row := math.Floor(o.Y / th)
	return geom.Point{X: (col + 0.5) * tw, Y: (row + 0.5) * th}
}

func (s *Scene) addBlocker(layerName string, o *mapdoc.Object) {
	if len(o.Polygon) > 0 {
		points := make([]geom.Point, len(o.Polygon))
		for i, v := range o.Polygon {
			points[i] = geom.Point{X: o.X + v.X, Y: o.Y + v.Y}
		}
		pg, ok := geom.NewPolygon(points)
		if !ok {
			s.logf("Warning: layer %q: polygon object %d has %d points, needs 3, skipped", layerName, o.ID, len(points))
			return
		}
		s.polyBlockers = append(s.polyBlockers, pg)
		return
	}
	if o.Width < 0 || o.Height < 0 {
		s.logf("Warning: layer %q: blocker object %d has negative size, skipped", layerName, o.ID)
		return
	}
	s.rectBlockers = append(s.rectBlockers, objectRect(o))
}

// resolveSpawn applies the spawn precedence: caller override, sidecar
// override, in-document spawn, map center.
func (s *Scene) resolveSpawn(opts Options) {
	if opts.SpawnOverride != nil {
		s.spawn = *opts.SpawnOverride
		return
	}
	if opts.SidecarPath != "" {
		if p, ok := s.sidecarSpawn(opts.SidecarPath); ok {
			s.spawn = p
			return
		}
	}
	if s.docSpawn != nil {
		s.spawn = *s.docSpawn
		return
	}
	w, h := s.PixelSize()
	s.spawn = geom.Point{X: float64(w) / 2, Y: float64(h) / 2}
}

package scene

import (
	"encoding/json"
	"os"

	"github.com/automoto/mapscene/geom"
)

// SpawnOverride is one sidecar entry. Coordinates are either a tile cell
// (spawn at its center) or exact pixels; pixels win when both are present.
type SpawnOverride struct {
	TileX *int     `json:"tileX"`
	TileY *int     `json:"tileY"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
}

// sidecarSpawn looks up this map's entry in the sidecar file, keyed by map
// name. A missing or unreadable sidecar is advisory only.
func (s *Scene) sidecarSpawn(path string) (geom.Point, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logf("Warning: spawn sidecar %s: %v", path, err)
		}
		return geom.Point{}, false
	}
	var entries map[string]SpawnOverride
	if err := json.Unmarshal(b, &entries); err != nil {
		s.logf("Warning: spawn sidecar %s: %v", path, err)
		return geom.Point{}, false
	}
	ov, ok := entries[s.name]
	if !ok {
		return geom.Point{}, false
	}
	if ov.X != nil && ov.Y != nil {
		return geom.Point{X: *ov.X, Y: *ov.Y}, true
	}
	if ov.TileX != nil && ov.TileY != nil {
		tw, th := float64(s.tileWidth), float64(s.tileHeight)
		return geom.Point{
			X: (float64(*ov.TileX) + 0.5) * tw,
			Y: (float64(*ov.TileY) + 0.5) * th,
		}, true
	}
	s.logf("Warning: spawn sidecar %s: entry %q has no usable coordinates", path, s.name)
	return geom.Point{}, false
}

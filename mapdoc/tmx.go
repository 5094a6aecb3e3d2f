package mapdoc

import (
	"fmt"
	"strconv"

	"github.com/lafriks/go-tiled"
)

// LoadTMX reads a TMX map and converts it into the document model, so XML
// maps authored in Tiled flow through the same scene pipeline as JSON ones.
//
// go-tiled splits the layer tree by kind, so the original interleaving of
// tile and object layers is not preserved: converted documents order tile
// layers first, then object groups, then groups. Draw order within each kind
// is kept.
func LoadTMX(path string) (*Map, error) {
	tm, err := tiled.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", path, err)
	}

	m := &Map{
		Width:      tm.Width,
		Height:     tm.Height,
		TileWidth:  tm.TileWidth,
		TileHeight: tm.TileHeight,
		Tilesets:   make([]Tileset, 0, len(tm.Tilesets)),
	}
	for _, ts := range tm.Tilesets {
		entry := Tileset{
			FirstGID:   int(ts.FirstGID),
			Name:       ts.Name,
			TileWidth:  ts.TileWidth,
			TileHeight: ts.TileHeight,
			Spacing:    ts.Spacing,
			Margin:     ts.Margin,
			Columns:    ts.Columns,
			TileCount:  ts.TileCount,
		}
		if ts.Image != nil {
			entry.Image = ts.Image.Source
		}
		m.Tilesets = append(m.Tilesets, entry)
	}

	for _, l := range tm.Layers {
		m.Layers = append(m.Layers, convertTileLayer(tm, l))
	}
	for _, og := range tm.ObjectGroups {
		m.Layers = append(m.Layers, convertObjectGroup(og))
	}
	for _, g := range tm.Groups {
		m.Layers = append(m.Layers, convertGroup(tm, g))
	}
	return m, nil
}

func convertTileLayer(tm *tiled.Map, l *tiled.Layer) Layer {
	opacity := float64(l.Opacity)
	visible := l.Visible
	out := Layer{
		Type:    TypeTileLayer,
		Name:    l.Name,
		Width:   tm.Width,
		Height:  tm.Height,
		Opacity: &opacity,
		Visible: &visible,
		Data:    make([]int, len(l.Tiles)),
	}
	for i, t := range l.Tiles {
		if t.IsNil() {
			continue
		}
		out.Data[i] = int(t.Tileset.FirstGID + t.ID)
	}
	return out
}

func convertObjectGroup(og *tiled.ObjectGroup) Layer {
	opacity := float64(og.Opacity)
	visible := og.Visible
	out := Layer{
		Type:    TypeObjectGroup,
		Name:    og.Name,
		Opacity: &opacity,
		Visible: &visible,
	}
	for _, o := range og.Objects {
		obj := Object{
			ID:     int(o.ID),
			Name:   o.Name,
			Type:   o.Type,
			X:      o.X,
			Y:      o.Y,
			Width:  o.Width,
			Height: o.Height,
		}
		if len(o.Polygons) > 0 && o.Polygons[0].Points != nil {
			for _, p := range *o.Polygons[0].Points {
				obj.Polygon = append(obj.Polygon, Point{X: p.X, Y: p.Y})
			}
		}
		for _, p := range o.Properties {
			obj.Props = append(obj.Props, Property{
				Name:  p.Name,
				Type:  p.Type,
				Value: propertyValue(p.Type, p.Value),
			})
		}
		out.Objects = append(out.Objects, obj)
	}
	return out
}

// propertyValue converts a TMX property, which go-tiled always delivers as a
// string, into the value the JSON decoder produces for the same property, so
// typed lookups like Properties.GetFloat behave identically for both formats.
func propertyValue(typ, raw string) any {
	switch typ {
	case "int", "float":
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	case "bool":
		return raw == "true"
	}
	return raw
}

func convertGroup(tm *tiled.Map, g *tiled.Group) Layer {
	opacity := float64(g.Opacity)
	visible := g.Visible
	out := Layer{
		Type:    TypeGroup,
		Name:    g.Name,
		OffsetX: float64(g.OffsetX),
		OffsetY: float64(g.OffsetY),
		Opacity: &opacity,
		Visible: &visible,
	}
	for _, l := range g.Layers {
		out.Layers = append(out.Layers, convertTileLayer(tm, l))
	}
	for _, og := range g.ObjectGroups {
		out.Layers = append(out.Layers, convertObjectGroup(og))
	}
	for _, sub := range g.Groups {
		out.Layers = append(out.Layers, convertGroup(tm, sub))
	}
	return out
}

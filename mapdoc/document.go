// Package mapdoc models the map document tree: grid dimensions, tileset
// references, a nested layer tree, and free-form objects. The on-disk form is
// the Tiled JSON export; a TMX front-end converts XML maps into the same
// model so both formats feed one pipeline.
package mapdoc

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Layer type discriminators as they appear in the document.
const (
	TypeTileLayer   = "tilelayer"
	TypeObjectGroup = "objectgroup"
	TypeGroup       = "group"
)

// Map is the top-level document.
type Map struct {
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	TileWidth  int       `json:"tilewidth"`
	TileHeight int       `json:"tileheight"`
	Tilesets   []Tileset `json:"tilesets"`
	Layers     []Layer   `json:"layers"`
}

// Tileset is one tileset reference. A tileset without an image is legal; it
// registers but never resolves tiles.
type Tileset struct {
	FirstGID   int    `json:"firstgid"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	TileWidth  int    `json:"tilewidth"`
	TileHeight int    `json:"tileheight"`
	Spacing    int    `json:"spacing"`
	Margin     int    `json:"margin"`
	Columns    int    `json:"columns"`
	TileCount  int    `json:"tilecount"`
}

// Layer is one node of the layer tree. Exactly one of Data, Objects or
// Layers is populated depending on Type.
type Layer struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	OffsetX float64  `json:"offsetx"`
	OffsetY float64  `json:"offsety"`
	Opacity *float64 `json:"opacity"`
	Visible *bool    `json:"visible"`
	Data    []int    `json:"data"`
	Objects []Object `json:"objects"`
	Layers  []Layer  `json:"layers"`
}

// EffectiveOpacity returns the layer's opacity, defaulting to fully opaque
// when the document omits the field.
func (l *Layer) EffectiveOpacity() float64 {
	if l.Opacity == nil {
		return 1
	}
	return *l.Opacity
}

// IsVisible defaults to true when the document omits the field.
func (l *Layer) IsVisible() bool {
	return l.Visible == nil || *l.Visible
}

// Object is one entry of an object layer.
type Object struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Type    string     `json:"type"`
	Class   string     `json:"class"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Text    *Text      `json:"text"`
	Polygon []Point    `json:"polygon"`
	Props   Properties `json:"properties"`

	// Inline portal target fields. Older documents carry these directly on
	// the object instead of in the properties array.
	Target  string   `json:"target"`
	TargetX *float64 `json:"targetx"`
	TargetY *float64 `json:"targety"`
}

// Tag reports whether the object's type or class tag equals s,
// case-insensitively.
func (o *Object) Tag(s string) bool {
	return strings.EqualFold(o.Type, s) || strings.EqualFold(o.Class, s)
}

// Point is a polygon vertex relative to its object's origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Text is the styled payload of a text object. Legacy documents store the
// field as a bare string; UnmarshalJSON accepts both forms.
type Text struct {
	Value     string `json:"text"`
	PixelSize int    `json:"pixelsize"`
	Bold      bool   `json:"bold"`
	Italic    bool   `json:"italic"`
	Color     string `json:"color"`
	HAlign    string `json:"halign"`
	VAlign    string `json:"valign"`
}

func (t *Text) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text{Value: s}
		return nil
	}
	type alias Text
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*t = Text(a)
	return nil
}

// Property is one name/value pair from an object's properties array.
type Property struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Properties is an ordered property list. Lookups return the first match.
type Properties []Property

// GetString returns the first property named name rendered as a string, or
// "" when absent. Numeric values format without an exponent.
func (ps Properties) GetString(name string) string {
	for _, p := range ps {
		if !strings.EqualFold(p.Name, name) {
			continue
		}
		switch v := p.Value.(type) {
		case string:
			return v
		case float64:
			return formatNumber(v)
		case bool:
			if v {
				return "true"
			}
			return "false"
		case nil:
			return ""
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

// GetFloat returns the first property named name as a float64. ok is false
// when the property is absent or not numeric.
func (ps Properties) GetFloat(name string) (float64, bool) {
	for _, p := range ps {
		if !strings.EqualFold(p.Name, name) {
			continue
		}
		if v, isNum := p.Value.(float64); isNum {
			return v, true
		}
		return 0, false
	}
	return 0, false
}

// Read decodes a JSON map document and validates its required top-level
// fields. Validation failures here are the only fatal document errors.
func Read(r io.Reader) (*Map, error) {
	var m Map
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode map document: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadFile reads and decodes the JSON map document at path.
func ReadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map document: %w", err)
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m *Map) validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map document: invalid grid size %dx%d", m.Width, m.Height)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return fmt.Errorf("map document: invalid tile size %dx%d", m.TileWidth, m.TileHeight)
	}
	if m.Tilesets == nil {
		return fmt.Errorf("map document: missing tilesets array")
	}
	return nil
}


func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

package scene

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/automoto/mapscene/geom"
	"github.com/automoto/mapscene/mapdoc"
)

// Align is a text label alignment value as written in the document.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
	AlignTop    Align = "top"
	AlignBottom Align = "bottom"
)

// TextLabel is a piece of map text with its styling. Bounds is the optional
// alignment box; a zero-size Bounds means the label is anchored at Pos only.
type TextLabel struct {
	Pos    geom.Point
	Bounds geom.Rect
	Value  string
	Size   int
	Bold   bool
	Italic bool
	Color  color.RGBA
	HAlign Align
	VAlign Align
}

// Portal is a named entrance region. Target is nil when the portal has no
// explicit landing coordinates in the target map.
type Portal struct {
	Rect      geom.Rect
	Name      string
	TargetMap string
	Target    *geom.Point
}

// InteractionZone is a counter-style region offering a list of selectable
// options.
type InteractionZone struct {
	Rect    geom.Rect
	Name    string
	Options []string
}

// Trigger is a scripted zone or named actor anchor. Kind is one of the
// recognized subtypes (chef, professor, game, shop); Tag carries the
// matching property value, e.g. which minigame a game trigger starts.
type Trigger struct {
	Rect geom.Rect
	Name string
	Kind string
	Tag  string
}

// triggerKinds are the recognized trigger/anchor subtypes, matched against
// object tags and layer names.
var triggerKinds = []string{"chef", "professor", "game", "shop"}

type objectKind int

const (
	kindNone objectKind = iota
	kindSpawn
	kindCounter
	kindPortal
	kindBlocker
	kindTrigger
	kindLabel
)

// classify maps one object to its entity kind from the layer name, the
// object's type/class tags and its defining fields. The string result is the
// trigger subtype and is empty for every other kind. Matching is
// case-insensitive throughout; the first matching category wins in the order
// spawn, counter, portal, blocker, trigger, label.
func classify(layerName string, o *mapdoc.Object) (objectKind, string) {
	ln := strings.ToLower(layerName)

	if containsFold(o.Name, "protagonist") || containsFold(o.Type, "protagonist") || containsFold(o.Class, "protagonist") {
		return kindSpawn, ""
	}
	if strings.Contains(ln, "interaction") && o.Tag("counter") {
		return kindCounter, ""
	}
	if ln == "entrance" || o.Tag("entrance") {
		return kindPortal, ""
	}
	if strings.Contains(ln, "notwalkable") {
		return kindBlocker, ""
	}
	for _, k := range triggerKinds {
		if o.Tag(k) || o.Tag(k+"-trigger") || strings.Contains(ln, k) {
			return kindTrigger, k
		}
	}
	if strings.Contains(ln, "text") || strings.Contains(ln, "name") {
		return kindLabel, ""
	}
	return kindNone, ""
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

func objectRect(o *mapdoc.Object) geom.Rect {
	return geom.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

func buildLabel(o *mapdoc.Object) (TextLabel, bool) {
	if o.Text == nil || o.Text.Value == "" {
		return TextLabel{}, false
	}
	l := TextLabel{
		Pos:    geom.Point{X: o.X, Y: o.Y},
		Value:  o.Text.Value,
		Size:   o.Text.PixelSize,
		Bold:   o.Text.Bold,
		Italic: o.Text.Italic,
		Color:  parseHexColor(o.Text.Color),
		HAlign: AlignLeft,
		VAlign: AlignTop,
	}
	if l.Size <= 0 {
		l.Size = 16
	}
	if o.Width > 0 || o.Height > 0 {
		l.Bounds = objectRect(o)
	}
	if o.Text.HAlign != "" {
		l.HAlign = Align(strings.ToLower(o.Text.HAlign))
	}
	if o.Text.VAlign != "" {
		l.VAlign = Align(strings.ToLower(o.Text.VAlign))
	}
	return l, true
}

func buildPortal(o *mapdoc.Object) (Portal, bool) {
	if o.Name == "" {
		return Portal{}, false
	}
	p := Portal{
		Rect:      objectRect(o),
		Name:      o.Name,
		TargetMap: o.Target,
	}
	if p.TargetMap == "" {
		p.TargetMap = o.Props.GetString("target")
	}
	tx, okX := inlineOrProp(o.TargetX, o.Props, "targetx")
	ty, okY := inlineOrProp(o.TargetY, o.Props, "targety")
	if okX && okY {
		p.Target = &geom.Point{X: tx, Y: ty}
	}
	return p, true
}

func inlineOrProp(inline *float64, props mapdoc.Properties, name string) (float64, bool) {
	if inline != nil {
		return *inline, true
	}
	return props.GetFloat(name)
}

func buildCounter(o *mapdoc.Object) (InteractionZone, bool) {
	if o.Name == "" {
		return InteractionZone{}, false
	}
	z := InteractionZone{Rect: objectRect(o), Name: o.Name}
	for _, part := range strings.Split(o.Props.GetString("dishes"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			z.Options = append(z.Options, part)
		}
	}
	return z, true
}

func buildTrigger(o *mapdoc.Object, kind string) Trigger {
	return Trigger{
		Rect: objectRect(o),
		Name: o.Name,
		Kind: kind,
		Tag:  o.Props.GetString(kind),
	}
}

// parseHexColor parses "#rrggbb" and "#aarrggbb". Anything else comes back
// opaque white.
func parseHexColor(s string) color.RGBA {
	var a, r, g, b uint32
	if len(s) == 9 && s[0] == '#' {
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x%02x", &a, &r, &g, &b); err == nil {
			return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
		}
	}
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
		}
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

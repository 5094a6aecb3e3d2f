// Package fonts hands out cached font faces for map text labels. The Go
// font family ships with the module so label styles (bold/italic) render
// without any external font asset.
package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Style selects a font variant.
type Style struct {
	Bold   bool
	Italic bool
}

type faceKey struct {
	style Style
	size  float64
}

var (
	parsed = map[Style]*truetype.Font{}
	faces  = map[faceKey]font.Face{}
)

// Face returns a font face for the style at the given pixel size, caching
// parsed fonts and built faces.
func Face(style Style, size float64) font.Face {
	key := faceKey{style: style, size: size}
	if f, ok := faces[key]; ok {
		return f
	}
	f := truetype.NewFace(variant(style), &truetype.Options{Size: size})
	faces[key] = f
	return f
}

func variant(style Style) *truetype.Font {
	if f, ok := parsed[style]; ok {
		return f
	}
	var ttf []byte
	switch style {
	case Style{Bold: true, Italic: true}:
		ttf = gobolditalic.TTF
	case Style{Bold: true}:
		ttf = gobold.TTF
	case Style{Italic: true}:
		ttf = goitalic.TTF
	default:
		ttf = goregular.TTF
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("fonts: parse builtin font: %v", err))
	}
	parsed[style] = f
	return f
}

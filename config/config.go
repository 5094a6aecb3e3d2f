// Package config holds the viewer's presentation defaults. Scene loading
// itself takes an explicit scene.Options value; nothing here leaks into the
// engine.
package config

import "image/color"

// Config holds general viewer configuration.
type Config struct {
	Width  int
	Height int
	Title  string
}

// ViewerConfig contains probe cursor and overlay configuration.
type ViewerConfig struct {
	CursorSize    float32
	CursorSpeed   float64
	CursorColor   color.RGBA
	BlockedColor  color.RGBA
	ExtrudeAmount int
}

// Global configuration instances
var C = Config{
	Width:  960,
	Height: 640,
	Title:  "mapscene viewer",
}

var Viewer = ViewerConfig{
	CursorSize:    4,
	CursorSpeed:   3,
	CursorColor:   color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff},
	BlockedColor:  color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	ExtrudeAmount: 2,
}

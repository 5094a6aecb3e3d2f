package mapdoc

import (
	"os"
	"path/filepath"
	"testing"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="2" height="2" tilewidth="16" tileheight="16" nextobjectid="3">
 <tileset firstgid="1" name="campus" tilewidth="16" tileheight="16" tilecount="4" columns="2">
  <image source="campus.png" width="32" height="32"/>
 </tileset>
 <layer id="1" name="ground" width="2" height="2">
  <data encoding="csv">1,2,3,4</data>
 </layer>
 <objectgroup id="2" name="entrance">
  <object id="1" name="Door" x="10" y="20" width="5" height="5">
   <properties>
    <property name="target" value="library.map"/>
    <property name="targetx" type="float" value="64"/>
    <property name="targety" type="int" value="32"/>
    <property name="locked" type="bool" value="true"/>
   </properties>
  </object>
 </objectgroup>
</map>`

func TestLoadTMXConvertsToDocumentModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "campus.tmx")
	if err := os.WriteFile(path, []byte(testTMX), 0o644); err != nil {
		t.Fatalf("write TMX: %v", err)
	}

	m, err := LoadTMX(path)
	if err != nil {
		t.Fatalf("LoadTMX: %v", err)
	}
	if m.Width != 2 || m.Height != 2 || m.TileWidth != 16 || m.TileHeight != 16 {
		t.Errorf("map geometry = %dx%d tiles of %dx%d", m.Width, m.Height, m.TileWidth, m.TileHeight)
	}
	if len(m.Tilesets) != 1 {
		t.Fatalf("tilesets = %d, want 1", len(m.Tilesets))
	}
	ts := m.Tilesets[0]
	if ts.FirstGID != 1 || ts.Name != "campus" || ts.Image != "campus.png" || ts.Columns != 2 || ts.TileCount != 4 {
		t.Errorf("tileset converted as %+v", ts)
	}

	if len(m.Layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(m.Layers))
	}
	tiles := m.Layers[0]
	if tiles.Type != TypeTileLayer || tiles.Name != "ground" {
		t.Errorf("first layer = %s %q", tiles.Type, tiles.Name)
	}
	wantData := []int{1, 2, 3, 4}
	if len(tiles.Data) != len(wantData) {
		t.Fatalf("data length = %d, want %d", len(tiles.Data), len(wantData))
	}
	for i, want := range wantData {
		if tiles.Data[i] != want {
			t.Errorf("data[%d] = %d, want %d", i, tiles.Data[i], want)
		}
	}

	objects := m.Layers[1]
	if objects.Type != TypeObjectGroup || objects.Name != "entrance" {
		t.Fatalf("second layer = %s %q", objects.Type, objects.Name)
	}
	if len(objects.Objects) != 1 {
		t.Fatalf("objects = %d, want 1", len(objects.Objects))
	}
	o := objects.Objects[0]
	if o.Name != "Door" || o.X != 10 || o.Y != 20 || o.Width != 5 || o.Height != 5 {
		t.Errorf("object converted as %+v", o)
	}
	if got := o.Props.GetString("target"); got != "library.map" {
		t.Errorf("target property = %q, want library.map", got)
	}
}

// TMX properties arrive from go-tiled as strings; the adapter must convert
// declared numeric and bool types so typed lookups work the same as for JSON
// documents.
func TestLoadTMXConvertsTypedProperties(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "campus.tmx")
	if err := os.WriteFile(path, []byte(testTMX), 0o644); err != nil {
		t.Fatalf("write TMX: %v", err)
	}

	m, err := LoadTMX(path)
	if err != nil {
		t.Fatalf("LoadTMX: %v", err)
	}
	o := m.Layers[1].Objects[0]

	if v, ok := o.Props.GetFloat("targetx"); !ok || v != 64 {
		t.Errorf("GetFloat(targetx) = %v, %v, want 64, true", v, ok)
	}
	if v, ok := o.Props.GetFloat("targety"); !ok || v != 32 {
		t.Errorf("GetFloat(targety) = %v, %v, want 32, true", v, ok)
	}
	if got := o.Props.GetString("locked"); got != "true" {
		t.Errorf("GetString(locked) = %q, want true", got)
	}
	// Untyped properties stay strings.
	if _, ok := o.Props.GetFloat("target"); ok {
		t.Error("GetFloat(target) reported ok for a string property")
	}
}

package jobio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeJob(t *testing.T, doc JobDoc) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "job.json")
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func solidDoc(id string, w, h int) FootprintDoc {
	var cells []CellDoc
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, CellDoc{X: x, Y: y, Stack: []int{0, 1, 0}})
		}
	}
	return FootprintDoc{ID: id, Cells: cells}
}

func TestLoadRoundTrip(t *testing.T) {
	doc := JobDoc{
		Carrier:    CarrierDoc{ShipName: "bay-3", Width: 10, Height: 5, MaxTimeSeconds: 1},
		BlockIDs:   []string{"A"},
		Footprints: []FootprintDoc{solidDoc("A", 5, 5)},
	}
	path := writeJob(t, doc)

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Carrier.Width != 10 || loaded.Carrier.Height != 5 {
		t.Fatalf("expected carrier dims to round-trip, got %+v", loaded.Carrier)
	}
}

func TestCatalogBuildsFootprints(t *testing.T) {
	doc := JobDoc{Footprints: []FootprintDoc{solidDoc("A", 3, 2)}}
	catalog, err := Catalog(doc)
	if err != nil {
		t.Fatal(err)
	}
	fp, ok := catalog["A"]
	if !ok {
		t.Fatal("expected block A in catalog")
	}
	w, h := fp.Bounds(0)
	if w != 3 || h != 2 {
		t.Fatalf("expected 3x2 bounds, got %dx%d", w, h)
	}
}

func TestCatalogRejectsEmptyFootprint(t *testing.T) {
	doc := JobDoc{Footprints: []FootprintDoc{{ID: "empty"}}}
	if _, err := Catalog(doc); err == nil {
		t.Fatal("expected FootprintError for a footprint with no cells")
	} else if _, ok := err.(FootprintError); !ok {
		t.Fatalf("expected FootprintError, got %T: %v", err, err)
	}
}

func TestCatalogAcceptsBareCellsAsFilled(t *testing.T) {
	doc := JobDoc{Footprints: []FootprintDoc{
		{ID: "A", Cells: []CellDoc{{X: 0, Y: 0}, {X: 1, Y: 0}}},
	}}
	catalog, err := Catalog(doc)
	if err != nil {
		t.Fatal(err)
	}
	if catalog["A"].Area() != 2 {
		t.Fatalf("expected bare cells to count as filled, got area %d", catalog["A"].Area())
	}
}

func TestConfigRejectsUnknownNeighborPolicy(t *testing.T) {
	doc := JobDoc{Carrier: CarrierDoc{Width: 5, Height: 5, NeighborPolicy: "diagonal"}}
	if _, err := Config(doc); err == nil {
		t.Fatal("expected an error for an unrecognized neighbor_policy")
	}
}

func TestConfigDefaultsMaxTime(t *testing.T) {
	doc := JobDoc{Carrier: CarrierDoc{Width: 5, Height: 5}}
	cfg, err := Config(doc)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxTimeSeconds <= 0 {
		t.Fatalf("expected a positive default max_time_seconds, got %v", cfg.MaxTimeSeconds)
	}
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TilePlan/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bath"+FileExt)

	p := model.NewProject()
	p.Name = "Bathroom"
	p.Scheme = model.SchemeWalls
	p.Method = model.MethodCentered
	p.Tile = model.NewTileOptions(200, 250, 2)
	p.Walls = model.RoomWalls(2400, 1800, 2500, &model.Door{Width: 700, Height: 2000})

	if err := Save(path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ID != p.ID || loaded.Name != "Bathroom" {
		t.Errorf("expected %s/Bathroom, got %s/%s", p.ID, loaded.ID, loaded.Name)
	}
	if loaded.Scheme != model.SchemeWalls || loaded.Method != model.MethodCentered {
		t.Errorf("unexpected scheme/method %s/%s", loaded.Scheme, loaded.Method)
	}
	if len(loaded.Walls) != 4 || loaded.Walls[2].Door == nil || loaded.Walls[2].Door.Width != 700 {
		t.Errorf("unexpected walls %+v", loaded.Walls)
	}
}

func TestLoadProjectFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old"+FileExt)
	data := []byte(`{"name":"Hall","walls":[{"label":"A","width":1000,"height":2000}]}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.ID == "" {
		t.Error("expected a generated ID")
	}
	if p.Name != "Hall" {
		t.Errorf("expected name Hall, got %s", p.Name)
	}
	if p.GroutFormula != model.GroutBetweenTiles {
		t.Errorf("expected default grout formula, got %s", p.GroutFormula)
	}
	if p.Tile.Width != 500 || p.Method != model.MethodDirect {
		t.Errorf("expected default tile and method, got %s %s", p.Tile.Size(), p.Method)
	}
	if len(p.Walls) != 1 || p.Walls[0].Door != nil {
		t.Errorf("expected the single file wall without door, got %+v", p.Walls)
	}
}

func TestLoadProjectErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing"+FileExt)); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad"+FileExt)
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

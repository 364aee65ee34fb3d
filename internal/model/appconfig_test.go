package model

import "testing"

func TestDefaultAppConfigMatchesNewProject(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := NewProject()

	if cfg.DefaultTileWidth != defaults.Tile.Width {
		t.Errorf("TileWidth mismatch: config=%f project=%f", cfg.DefaultTileWidth, defaults.Tile.Width)
	}
	if cfg.DefaultDelimiter != defaults.Tile.Delimiter {
		t.Errorf("Delimiter mismatch: config=%f project=%f", cfg.DefaultDelimiter, defaults.Tile.Delimiter)
	}
	if cfg.DefaultMethod != defaults.Method {
		t.Errorf("Method mismatch: config=%s project=%s", cfg.DefaultMethod, defaults.Method)
	}
	if cfg.CanvasWidth != 1280 || cfg.CanvasHeight != 720 {
		t.Errorf("expected 1280x720 canvas, got %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultTileWidth = 300
	cfg.DefaultTileHeight = 600
	cfg.DefaultDelimiter = 3
	cfg.DefaultMethod = MethodCentered
	cfg.DefaultPricePerTile = 4.5
	cfg.GroutFormula = GroutLegacy

	p := NewProject()
	cfg.ApplyToProject(&p)

	if p.Tile.Width != 300 || p.Tile.Height != 600 {
		t.Errorf("expected 300x600 tile, got %s", p.Tile.Size())
	}
	if p.Tile.Delimiter != 3 {
		t.Errorf("expected delimiter=3, got %f", p.Tile.Delimiter)
	}
	if p.Method != MethodCentered {
		t.Errorf("expected Centered, got %s", p.Method)
	}
	if p.PricePerTile != 4.5 {
		t.Errorf("expected price=4.5, got %f", p.PricePerTile)
	}
	if p.GroutFormula != GroutLegacy {
		t.Errorf("expected legacy grout formula, got %s", p.GroutFormula)
	}
}

func TestApplyToProjectKeepsMethodWhenUnset(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultMethod = 0

	p := NewProject()
	p.Method = MethodDiagonal
	cfg.ApplyToProject(&p)

	if p.Method != MethodDiagonal {
		t.Errorf("expected method to stay Diagonal, got %s", p.Method)
	}
}

func TestAddRecent(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecent("a.json", 3)
	cfg.AddRecent("b.json", 3)
	cfg.AddRecent("c.json", 3)
	cfg.AddRecent("a.json", 3)
	cfg.AddRecent("d.json", 3)

	want := []string{"d.json", "a.json", "c.json"}
	if len(cfg.RecentProjects) != len(want) {
		t.Fatalf("expected %d recent projects, got %v", len(want), cfg.RecentProjects)
	}
	for i, w := range want {
		if cfg.RecentProjects[i] != w {
			t.Errorf("recent[%d]: expected %s, got %s", i, w, cfg.RecentProjects[i])
		}
	}
}

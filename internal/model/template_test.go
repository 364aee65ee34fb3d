package model

import (
	"testing"
)

func TestNewTilePreset(t *testing.T) {
	p := NewProject()
	p.Tile = TileOptions{Width: 600, Height: 300, Delimiter: 3, LeadingOffsetX: 120}
	p.Method = MethodCentered
	p.PricePerTile = 2.75

	preset := NewTilePreset("Metro", "Subway tile", p)

	if preset.Name != "Metro" {
		t.Errorf("expected name 'Metro', got %q", preset.Name)
	}
	if preset.ID == "" {
		t.Error("expected non-empty ID")
	}
	if preset.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if preset.Tile.Width != 600 || preset.Tile.Height != 300 || preset.Tile.Delimiter != 3 {
		t.Errorf("unexpected tile %+v", preset.Tile)
	}
	if preset.Tile.LeadingOffsetX != 0 {
		t.Errorf("expected carried offset to be dropped, got %f", preset.Tile.LeadingOffsetX)
	}
	if preset.Method != MethodCentered {
		t.Errorf("expected Centered, got %s", preset.Method)
	}
}

func TestTilePreset_ApplyTo(t *testing.T) {
	preset := TilePreset{
		Name:         "Large",
		Tile:         NewTileOptions(1200, 600, 2),
		Method:       MethodDiagonal,
		PricePerTile: 12,
	}

	p := NewProject()
	preset.ApplyTo(&p)

	if p.Tile.Width != 1200 || p.Tile.Height != 600 {
		t.Errorf("expected 1200x600, got %s", p.Tile.Size())
	}
	if p.Method != MethodDiagonal {
		t.Errorf("expected Diagonal, got %s", p.Method)
	}
	if p.PricePerTile != 12 {
		t.Errorf("expected price 12, got %f", p.PricePerTile)
	}
}

func TestPresetStore_AddRemove(t *testing.T) {
	store := NewPresetStore()
	a := NewTilePreset("A", "", NewProject())
	b := NewTilePreset("B", "", NewProject())
	store.Add(a)
	store.Add(b)

	if len(store.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(store.Presets))
	}
	if !store.Remove(a.ID) {
		t.Error("expected Remove to return true for existing preset")
	}
	if store.Remove("missing") {
		t.Error("expected Remove to return false for unknown ID")
	}
	if len(store.Presets) != 1 || store.Presets[0].Name != "B" {
		t.Errorf("expected only B left, got %v", store.Names())
	}
}

func TestPresetStore_Find(t *testing.T) {
	store := NewPresetStore()
	a := NewTilePreset("Hex", "", NewProject())
	store.Add(a)

	if got := store.FindByID(a.ID); got == nil || got.Name != "Hex" {
		t.Errorf("FindByID failed: %v", got)
	}
	if got := store.FindByName("Hex"); got == nil || got.ID != a.ID {
		t.Errorf("FindByName failed: %v", got)
	}
	if store.FindByName("nope") != nil {
		t.Error("expected nil for unknown name")
	}
	names := store.Names()
	if len(names) != 1 || names[0] != "Hex" {
		t.Errorf("unexpected names %v", names)
	}
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TilePlan/internal/model"
)

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	p := model.NewProject()
	p.Tile = model.NewTileOptions(600, 300, 3)
	p.Method = model.MethodCentered

	store := model.NewPresetStore()
	store.Add(model.NewTilePreset("Metro", "Subway", p))
	store.Add(model.NewTilePreset("Square", "", model.NewProject()))

	if err := SavePresets(path, store); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(loaded.Presets))
	}
	metro := loaded.FindByName("Metro")
	if metro == nil {
		t.Fatal("expected Metro preset")
	}
	if metro.Tile.Width != 600 || metro.Tile.Height != 300 || metro.Method != model.MethodCentered {
		t.Errorf("unexpected preset %+v", metro)
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	store, err := LoadPresets(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.Presets == nil || len(store.Presets) != 0 {
		t.Errorf("expected empty store, got %v", store.Presets)
	}
}

func TestLoadPresetsNullList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	if err := os.WriteFile(path, []byte(`{"presets":null}`), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := LoadPresets(path)
	if err != nil {
		t.Fatal(err)
	}
	if store.Presets == nil {
		t.Error("Presets should not be nil after loading")
	}
}

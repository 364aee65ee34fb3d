package model

import (
	"time"

	"github.com/google/uuid"
)

// TilePreset is a reusable tile definition: size, grout, preferred method
// and unit price. It carries no room geometry.
type TilePreset struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
	Tile         TileOptions  `json:"tile"`
	Method       LayingMethod `json:"method"`
	PricePerTile float64      `json:"price_per_tile"`
}

// NewTilePreset captures the tile settings of a project. Carried offsets are
// panel-specific and are not stored.
func NewTilePreset(name, description string, p Project) TilePreset {
	now := time.Now().UTC().Format(time.RFC3339)
	return TilePreset{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
		Tile:         NewTileOptions(p.Tile.Width, p.Tile.Height, p.Tile.Delimiter),
		Method:       p.Method,
		PricePerTile: p.PricePerTile,
	}
}

// ApplyTo overwrites the tile settings of p with the preset's.
func (t TilePreset) ApplyTo(p *Project) {
	p.Tile = t.Tile
	if t.Method.Valid() {
		p.Method = t.Method
	}
	p.PricePerTile = t.PricePerTile
}

// PresetStore holds a collection of tile presets.
type PresetStore struct {
	Presets []TilePreset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []TilePreset{},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(t TilePreset) {
	ps.Presets = append(ps.Presets, t)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, t := range ps.Presets {
		if t.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *TilePreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *TilePreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns a list of preset names for UI dropdowns.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, t := range ps.Presets {
		names[i] = t.Name
	}
	return names
}

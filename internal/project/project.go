// Package project persists projects, application settings, tile presets and
// rendered plan files on disk.
package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/TilePlan/internal/model"
)

// FileExt is the extension used for saved projects.
const FileExt = ".tileplan"

// Save writes the project to path as JSON.
func Save(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// Load reads a project from path. Fields a file leaves out fall back to the
// values of a new project, except the ID which is only generated when the
// file has none.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}

	defaults := model.NewProject()
	p := defaults
	p.ID = ""
	p.Walls = nil
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if p.ID == "" {
		p.ID = defaults.ID
	}
	if p.Walls == nil {
		p.Walls = defaults.Walls
	}
	if p.GroutFormula == "" {
		p.GroutFormula = model.GroutBetweenTiles
	}
	return p, nil
}

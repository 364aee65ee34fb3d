package engine

import (
	"fmt"

	"github.com/piwi3910/TilePlan/internal/model"
)

// ComparisonScenario defines a named project variant to compare.
type ComparisonScenario struct {
	Name    string
	Project model.Project
}

// ComparisonResult holds the plan and computed statistics for a single
// scenario.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Plan       model.Plan
	WholeTiles int
	CutTiles   int
	TilesUsed  int
	Purchase   int // tiles to buy including waste
	Cost       float64
	Err        error
}

// CompareScenarios plans each scenario and returns the results in scenario
// order. A scenario that fails validation keeps its error and zero counts.
func (p *Planner) CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan, err := p.Plan(scenario.Project)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		cut := 0
		for _, s := range plan.Surfaces {
			cut += s.Layout.CutTiles()
		}

		results = append(results, ComparisonResult{
			Scenario:   scenario,
			Plan:       plan,
			WholeTiles: plan.WholeTiles(),
			CutTiles:   cut,
			TilesUsed:  plan.TilesUsed(),
			Purchase:   plan.Estimate.TilesWithWaste,
			Cost:       plan.Estimate.EstimatedCost,
		})
	}

	return results
}

// CompareMethods plans a floor project once per laying method.
func (p *Planner) CompareMethods(project model.Project) []ComparisonResult {
	return p.CompareScenarios(BuildMethodScenarios(project))
}

// BuildMethodScenarios generates one scenario per laying method plus, when
// the tile is not square, the same project with the tile rotated.
func BuildMethodScenarios(base model.Project) []ComparisonScenario {
	scenarios := make([]ComparisonScenario, 0, len(model.LayingMethods)+1)
	for _, m := range model.LayingMethods {
		variant := base
		variant.Method = m
		name := m.String()
		if m == base.Method {
			name += " (current)"
		}
		scenarios = append(scenarios, ComparisonScenario{Name: name, Project: variant})
	}

	// Scenario: rotated tile
	if base.Tile.Width != base.Tile.Height {
		rotated := base
		rotated.Tile.Width, rotated.Tile.Height = base.Tile.Height, base.Tile.Width
		rotated.Tile.LeadingOffsetX, rotated.Tile.LeadingOffsetY = 0, 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:    fmt.Sprintf("%s rotated %gx%g", base.Method, rotated.Tile.Width, rotated.Tile.Height),
			Project: rotated,
		})
	}

	return scenarios
}

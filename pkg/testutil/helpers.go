// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/finance-planner/internal/planner"
	"github.com/iwvelando/finance-planner/pkg/mathutil"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindScenario(results []planner.ScenarioResult, name string) *planner.ScenarioResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// AlmostEqual reports whether a and b differ by no more than tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return mathutil.WithinTolerance(a, b, tolerance)
}

package export

import (
	"fmt"
	"math"

	"github.com/Faultbox/scenepack/internal/config"
)

// Budget holds the complexity weights and the hard limit. It is pure
// accounting: evaluating a budget never mutates scan state.
type Budget struct {
	TriangleWeight int
	LightWeight    int
	ColliderWeight int
	Limit          int
}

// DefaultBudget returns the standard weights: 1 per triangle, 100 per light,
// 4 per collider-bearing object, with a limit of 100000.
func DefaultBudget() Budget {
	return BudgetFromConfig(config.Default().Budget)
}

// BudgetFromConfig converts the config shape to a Budget.
func BudgetFromConfig(c config.BudgetConfig) Budget {
	return Budget{
		TriangleWeight: c.TriangleWeight,
		LightWeight:    c.LightWeight,
		ColliderWeight: c.ColliderWeight,
		Limit:          c.Limit,
	}
}

// Report is the result of evaluating raw counts against a budget.
type Report struct {
	Triangles       int
	Lights          int
	ColliderObjects int
	Used            int
	Limit           int
	Percent         int
}

// Evaluate converts raw counts into a weighted total and percent of limit.
// Percent is rounded half away from zero.
func (b Budget) Evaluate(triangles, lights, colliderObjects int) Report {
	used := triangles*b.TriangleWeight + lights*b.LightWeight + colliderObjects*b.ColliderWeight

	percent := 0
	if b.Limit > 0 {
		percent = int(math.Round(float64(used) / float64(b.Limit) * 100))
	}

	return Report{
		Triangles:       triangles,
		Lights:          lights,
		ColliderObjects: colliderObjects,
		Used:            used,
		Limit:           b.Limit,
		Percent:         percent,
	}
}

// WithinLimit reports whether the scene may be exported. A total exactly at
// the limit is allowed; only totals strictly above it are refused.
func (r Report) WithinLimit() bool {
	return r.Used <= r.Limit
}

// Line renders the budget line shown to the user.
func (r Report) Line() string {
	return fmt.Sprintf("complexity %d / %d (%d%%)", r.Used, r.Limit, r.Percent)
}

// Breakdown renders the per-category contribution line.
func (r Report) Breakdown() string {
	return fmt.Sprintf("triangles %d, lights %d, collider objects %d",
		r.Triangles, r.Lights, r.ColliderObjects)
}

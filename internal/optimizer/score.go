package optimizer

import (
	"math"

	"wq_alpha_gen/internal/catalog"
	"wq_alpha_gen/internal/expr"
)

// Scoring weights. These are tuning knobs, not a contract; the only promise
// callers get is that Optimize never returns a lower-scoring candidate.
const (
	kindBonus       = 1.5 // per distinct operator kind used
	depthOptimum    = 4.0 // interior optimum for tree depth
	depthPenalty    = 1.2 // per level away from the optimum
	neutralizeBonus = 2.0
	normalizeBonus  = 1.0
)

// Score rates a candidate's tree shape. It is a pure function: same tree,
// same score, no randomness and no market data. Three factors contribute:
// operator-kind diversity, a depth term that penalizes both very shallow and
// very deep trees, and a bonus for neutralization/normalization wrappers.
func Score(cat *catalog.Catalog, c *expr.Candidate) float64 {
	if c == nil || c.Root == nil {
		return 0
	}

	kinds := make(map[catalog.Kind]struct{})
	hasNeutralize := false
	hasNormalize := false
	c.Root.Walk(func(n *expr.Node) {
		if n.Kind != expr.KindOperator {
			return
		}
		op, err := cat.Operator(n.OpID)
		if err != nil {
			return
		}
		kinds[op.Kind] = struct{}{}
		if op.Kind == catalog.KindGroup {
			hasNeutralize = true
		}
		if op.ID == "zscore" || op.ID == "rank" {
			hasNormalize = true
		}
	})

	score := float64(len(kinds)) * kindBonus
	score -= math.Abs(float64(c.Root.Depth())-depthOptimum) * depthPenalty
	if hasNeutralize {
		score += neutralizeBonus
	}
	if hasNormalize {
		score += normalizeBonus
	}
	return score
}

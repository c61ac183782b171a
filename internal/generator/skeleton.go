package generator

import (
	"math/rand"

	"wq_alpha_gen/internal/expr"
)

// skeleton is one structural pattern candidates are drawn from.
type skeleton struct {
	id    string
	build func(r *run) *expr.Node
}

// basicSkeletons are the depth<=2 patterns: one operator over one or two
// field references.
var basicSkeletons = []skeleton{
	{id: "cs_rank", build: func(r *run) *expr.Node {
		return expr.Apply("rank", r.randomField())
	}},
	{id: "trailing_mean", build: func(r *run) *expr.Node {
		return expr.ApplyWindowed("ts_mean", r.window(5, 60), r.randomField())
	}},
	{id: "field_ratio", build: func(r *run) *expr.Node {
		return expr.Apply("divide", r.randomField(), r.randomField())
	}},
	{id: "mean_gap", build: func(r *run) *expr.Node {
		return expr.Apply("subtract",
			r.randomField(),
			expr.ApplyWindowed("ts_mean", r.window(5, 60), r.randomField()))
	}},
	{id: "lag_gap", build: func(r *run) *expr.Node {
		return expr.Apply("subtract",
			r.randomField(),
			expr.ApplyWindowed("delay", r.window(1, 10), r.randomField()))
	}},
}

// creativeCombinators name the arithmetic roots a creative candidate folds
// its sub-expressions with.
var creativeCombinators = []skeleton{
	{id: "blend_add"},
	{id: "blend_subtract"},
	{id: "blend_multiply"},
	{id: "blend_divide"},
}

var combinatorOp = map[string]string{
	"blend_add":      "add",
	"blend_subtract": "subtract",
	"blend_multiply": "multiply",
	"blend_divide":   "divide",
}

// skeletonPicker selects skeletons within one batch, favoring the least-used
// entries and never repeating the previous pick while an alternative exists.
// A batch of N <= len(set) candidates therefore gets N distinct skeletons.
type skeletonPicker struct {
	rng  *rand.Rand
	uses map[string]int
	prev string
}

func newSkeletonPicker(rng *rand.Rand) *skeletonPicker {
	return &skeletonPicker{rng: rng, uses: make(map[string]int)}
}

func (p *skeletonPicker) pick(set []skeleton) skeleton {
	minUse := -1
	for _, s := range set {
		if minUse == -1 || p.uses[s.id] < minUse {
			minUse = p.uses[s.id]
		}
	}
	eligible := make([]skeleton, 0, len(set))
	for _, s := range set {
		if p.uses[s.id] == minUse && s.id != p.prev {
			eligible = append(eligible, s)
		}
	}
	if len(eligible) == 0 {
		for _, s := range set {
			if s.id != p.prev {
				eligible = append(eligible, s)
			}
		}
	}
	if len(eligible) == 0 {
		eligible = set
	}
	chosen := eligible[p.rng.Intn(len(eligible))]
	p.uses[chosen.id]++
	p.prev = chosen.id
	return chosen
}

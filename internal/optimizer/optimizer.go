package optimizer

import (
	"math/rand"
	"time"

	"wq_alpha_gen/internal/catalog"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/expr"
	"wq_alpha_gen/internal/validator"
)

const (
	defaultRetries  = 5  // mutation attempts per iteration before giving up on it
	defaultPatience = 10 // consecutive non-improving iterations before early stop
)

// commonWindows are the lookback lengths that tend to work on the platform;
// window mutations nudge toward the closest one.
var commonWindows = []int{5, 10, 20, 60, 120, 252}

// Config tunes an Optimizer. Zero values fall back to defaults; Seed 0 seeds
// from the wall clock.
type Config struct {
	Seed     int64
	Retries  int
	Patience int
}

// Optimizer improves candidates by hill climbing: mutate a copy of the best
// tree, validate it, keep it only on a strict score improvement. It never
// returns a worse or invalid result than its input.
type Optimizer struct {
	cat      *catalog.Catalog
	val      *validator.Validator
	rng      *rand.Rand
	retries  int
	patience int
}

func New(cat *catalog.Catalog, val *validator.Validator, cfg Config) *Optimizer {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	patience := cfg.Patience
	if patience <= 0 {
		patience = defaultPatience
	}
	return &Optimizer{
		cat:      cat,
		val:      val,
		rng:      rand.New(rand.NewSource(seed)),
		retries:  retries,
		patience: patience,
	}
}

// Optimize runs up to iterations rounds of local search and returns the best
// validated variant found, the input itself if nothing improved on it.
// Reaching the iteration bound or the patience threshold is normal
// termination, not an error.
func (o *Optimizer) Optimize(c *expr.Candidate, iterations int) *expr.Candidate {
	best := c.Clone()
	best.Score = Score(o.cat, best)
	if o.val.Validate(best).Accepted() {
		best.Status = constant.StatusAccepted
	}

	stale := 0
	for i := 0; i < iterations && stale < o.patience; i++ {
		improved := false
		for try := 0; try < o.retries; try++ {
			mutant := best.Clone()
			if !o.mutate(mutant) {
				continue
			}
			if !o.val.Validate(mutant).Accepted() {
				continue // discard, retry within the iteration budget
			}
			mutant.Score = Score(o.cat, mutant)
			if mutant.Score > best.Score {
				mutant.Status = constant.StatusAccepted
				best = mutant
				improved = true
			}
			break // a validated mutant ends the iteration, improving or not
		}
		if improved {
			stale = 0
		} else {
			stale++
		}
	}
	return best
}

// mutate applies one bounded mutation in place. Returns false when the chosen
// mutation has no applicable site, which counts as a failed retry.
func (o *Optimizer) mutate(c *expr.Candidate) bool {
	switch o.rng.Intn(3) {
	case 0:
		return o.swapField(c)
	case 1:
		return o.swapOperator(c)
	default:
		return o.adjustWindow(c)
	}
}

// mutable returns the subtree open to mutation. Optimize-tier wrappers stay
// fixed so the candidate keeps its guaranteed normalize(neutralize(...)) root.
func (o *Optimizer) mutable(c *expr.Candidate) *expr.Node {
	n := c.Root
	if c.Tier != constant.TierOptimize {
		return n
	}
	if n.Kind == expr.KindOperator && n.OpID == c.Normalization && len(n.Children) == 1 {
		n = n.Children[0]
	}
	if n.Kind == expr.KindOperator && n.OpID == "group_neutralize" && len(n.Children) > 0 {
		n = n.Children[0]
	}
	return n
}

func (o *Optimizer) swapField(c *expr.Candidate) bool {
	var sites []*expr.Node
	o.mutable(c).Walk(func(n *expr.Node) {
		if n.Kind == expr.KindField {
			sites = append(sites, n)
		}
	})
	if len(sites) == 0 {
		return false
	}
	site := sites[o.rng.Intn(len(sites))]
	cur, err := o.cat.Field(site.FieldID)
	if err != nil {
		return false
	}

	var pool []catalog.Field
	for _, f := range o.cat.FieldsByDomain(cur.Domain) {
		if f.ID != cur.ID {
			pool = append(pool, f)
		}
	}
	if len(pool) == 0 {
		return false
	}
	site.FieldID = pool[o.rng.Intn(len(pool))].ID
	return true
}

func (o *Optimizer) swapOperator(c *expr.Candidate) bool {
	var sites []*expr.Node
	o.mutable(c).Walk(func(n *expr.Node) {
		if n.Kind != expr.KindOperator {
			return
		}
		if op, err := o.cat.Operator(n.OpID); err == nil && op.Kind != catalog.KindGroup {
			sites = append(sites, n)
		}
	})
	if len(sites) == 0 {
		return false
	}
	site := sites[o.rng.Intn(len(sites))]
	cur, err := o.cat.Operator(site.OpID)
	if err != nil {
		return false
	}

	var pool []catalog.Operator
	for _, op := range o.cat.OperatorsByArity(cur.Arity) {
		if op.ID == cur.ID || op.Kind == catalog.KindGroup || op.Windowed != cur.Windowed {
			continue
		}
		if o.acceptsChildren(op, site) {
			pool = append(pool, op)
		}
	}
	if len(pool) == 0 {
		return false
	}
	next := pool[o.rng.Intn(len(pool))]
	site.OpID = next.ID
	if next.Windowed {
		site.Window = clamp(site.Window, next.WindowMin, next.WindowMax)
	}
	return true
}

func (o *Optimizer) acceptsChildren(op catalog.Operator, site *expr.Node) bool {
	for i, child := range site.Children {
		d, err := child.Domain(o.cat)
		if err != nil || !op.Accepts(i, d) {
			return false
		}
	}
	return true
}

// adjustWindow nudges one window length a single step toward the closest
// common lookback, clamped to the operator's bounds. Values already in the
// 50-100 band are left where they are and a unit step is taken instead.
func (o *Optimizer) adjustWindow(c *expr.Candidate) bool {
	var sites []*expr.Node
	o.mutable(c).Walk(func(n *expr.Node) {
		if n.Kind != expr.KindOperator {
			return
		}
		if op, err := o.cat.Operator(n.OpID); err == nil && op.Windowed {
			sites = append(sites, n)
		}
	})
	if len(sites) == 0 {
		return false
	}
	site := sites[o.rng.Intn(len(sites))]
	op, err := o.cat.Operator(site.OpID)
	if err != nil {
		return false
	}

	w := site.Window
	next := w
	switch {
	case w < op.WindowMin:
		next = op.WindowMin
	case w > op.WindowMax:
		next = op.WindowMax
	default:
		closest := commonWindows[0]
		for _, p := range commonWindows {
			if abs(p-w) < abs(closest-w) {
				closest = p
			}
		}
		switch {
		case closest > w:
			next = w + 1
		case closest < w:
			next = w - 1
		default:
			if o.rng.Intn(2) == 0 {
				next = w + 1
			} else {
				next = w - 1
			}
		}
	}
	site.Window = clamp(next, op.WindowMin, op.WindowMax)
	return site.Window != w
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

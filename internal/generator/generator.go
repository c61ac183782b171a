package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"wq_alpha_gen/internal/catalog"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/expr"
)

var (
	ErrUnknownTier = errors.New("generator: unknown tier")
	ErrBadCount    = errors.New("generator: count must be at least 1")
)

// NeutralizeGroup is the grouping field the optimize tier neutralizes by,
// matching the default INDUSTRY simulation setting.
const NeutralizeGroup = "industry"

// NormalizeOp is the normalizing wrapper applied at the optimize tier root.
const NormalizeOp = "zscore"

const defaultFieldSample = 10

// Options tunes one Generate call. The zero value is ready to use.
type Options struct {
	// Seed fixes the random source; 0 seeds from wall clock.
	Seed int64
	// FieldSample caps the per-call field pool. 0 means the default of 10
	// for basic and twice that for the other tiers.
	FieldSample int
}

// Generator builds alpha candidates over a shared read-only catalog. Every
// Generate call carries its own random source and field pool, so calls are
// independent and safe to run concurrently.
type Generator struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Generator {
	return &Generator{cat: cat}
}

// run is the per-call state: random source, sampled field pool, and the
// batch-local skeleton pickers.
type run struct {
	cat       *catalog.Catalog
	rng       *rand.Rand
	fields    []catalog.Field
	picker    *skeletonPicker // top-level skeleton per candidate
	subPicker *skeletonPicker // sub-expression skeletons in creative folds
}

// Generate produces count candidates at the given tier. Trees are
// type-consistent by construction: every operator application is checked
// against the catalog while the tree is built, never after.
func (g *Generator) Generate(tier string, count int, opts Options) ([]*expr.Candidate, error) {
	if !constant.IsValidTier(tier) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCount, count)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sample := opts.FieldSample
	if sample == 0 {
		sample = defaultFieldSample
		if tier != constant.TierBasic {
			sample *= 2
		}
	}

	r := &run{
		cat:       g.cat,
		rng:       rng,
		fields:    sampleNumericFields(g.cat, rng, sample),
		picker:    newSkeletonPicker(rng),
		subPicker: newSkeletonPicker(rng),
	}

	out := make([]*expr.Candidate, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, r.generateOne(tier))
	}
	return out, nil
}

func (r *run) generateOne(tier string) *expr.Candidate {
	switch tier {
	case constant.TierBasic:
		sk := r.picker.pick(basicSkeletons)
		return expr.NewCandidate(sk.build(r), tier, sk.id)
	case constant.TierCreative:
		root, skID := r.buildCreative()
		return expr.NewCandidate(root, tier, skID)
	default: // optimize
		inner, skID := r.buildCreative()
		root := expr.Apply(NormalizeOp,
			expr.Apply("group_neutralize", inner, expr.FieldRef(NeutralizeGroup)))
		c := expr.NewCandidate(root, tier, skID)
		c.Neutralization = NeutralizeGroup
		c.Normalization = NormalizeOp
		return c
	}
}

// buildCreative folds 2-4 basic sub-expressions with one arithmetic
// combinator, then guarantees depth 3-5 by rank-wrapping shallow results.
func (r *run) buildCreative() (*expr.Node, string) {
	comb := r.picker.pick(creativeCombinators)
	opID := combinatorOp[comb.id]

	k := 2 + r.rng.Intn(3)
	root := r.subPicker.pick(basicSkeletons).build(r)
	for i := 1; i < k; i++ {
		sub := r.subPicker.pick(basicSkeletons).build(r)
		root = expr.Apply(opID, root, sub)
	}
	if root.Depth() < 3 {
		root = expr.Apply("rank", root)
	}
	return root, fmt.Sprintf("%s_%d", comb.id, k)
}

func (r *run) randomField() *expr.Node {
	f := r.fields[r.rng.Intn(len(r.fields))]
	return expr.FieldRef(f.ID)
}

// window draws a uniform window length in [lo, hi].
func (r *run) window(lo, hi int) int {
	return lo + r.rng.Intn(hi-lo+1)
}

// sampleNumericFields shuffles the catalog's numeric fields and keeps up to
// n of them. Grouping fields are excluded; they only appear through the
// optimize tier's neutralization wrapper. The full catalog spans several
// categories, so a pool of this size mixes categories on every call.
func sampleNumericFields(cat *catalog.Catalog, rng *rand.Rand, n int) []catalog.Field {
	var pool []catalog.Field
	for _, f := range cat.Fields() {
		if f.Domain != catalog.DomainGrouping {
			pool = append(pool, f)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

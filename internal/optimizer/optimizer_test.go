package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wq_alpha_gen/internal/catalog"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/expr"
	"wq_alpha_gen/internal/generator"
	"wq_alpha_gen/internal/validator"
)

func newEngines(t *testing.T, seed int64) (*catalog.Catalog, []*expr.Candidate, *Optimizer) {
	t.Helper()
	cat := catalog.Default()
	gen := generator.New(cat)
	val := validator.New(cat)

	candidates, err := gen.Generate(constant.TierCreative, 10, generator.Options{Seed: seed})
	require.NoError(t, err)

	opt := New(cat, val, Config{Seed: seed})
	return cat, candidates, opt
}

func TestScoreIsPure(t *testing.T) {
	cat, candidates, _ := newEngines(t, 5)

	for _, c := range candidates {
		first := Score(cat, c)
		second := Score(cat, c)
		assert.Equal(t, first, second)
		assert.Equal(t, first, Score(cat, c.Clone()))
	}
}

func TestScoreRewardsWrapping(t *testing.T) {
	cat := catalog.Default()

	inner := expr.Apply("subtract",
		expr.FieldRef("close"),
		expr.ApplyWindowed("delay", 5, expr.FieldRef("close")))
	bare := expr.NewCandidate(inner, constant.TierCreative, "test")

	wrapped := expr.NewCandidate(
		expr.Apply("zscore", expr.Apply("group_neutralize", inner.Clone(), expr.FieldRef("industry"))),
		constant.TierOptimize, "test")

	assert.Greater(t, Score(cat, wrapped), Score(cat, bare))
}

func TestOptimizeIsMonotonic(t *testing.T) {
	cat, candidates, opt := newEngines(t, 21)

	for _, c := range candidates {
		before := Score(cat, c)
		best := opt.Optimize(c, 50)
		assert.GreaterOrEqual(t, best.Score, before)
		assert.Equal(t, best.Score, Score(cat, best))
	}
}

func TestOptimizeReturnsValidatedCandidate(t *testing.T) {
	cat := catalog.Default()
	val := validator.New(cat)
	_, candidates, opt := newEngines(t, 33)

	for _, c := range candidates {
		best := opt.Optimize(c, 50)
		report := val.Validate(best)
		assert.True(t, report.Accepted(), "violations: %+v", report.Violations)
		assert.Equal(t, constant.StatusAccepted, best.Status)
	}
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	cat, candidates, opt := newEngines(t, 8)

	c := candidates[0]
	rendered, err := c.Root.Render(cat)
	require.NoError(t, err)

	opt.Optimize(c, 50)

	after, err := c.Root.Render(cat)
	require.NoError(t, err)
	assert.Equal(t, rendered, after)
}

// Optimize-tier candidates keep their guaranteed root wrappers through any
// number of mutations.
func TestOptimizePreservesWrapping(t *testing.T) {
	cat := catalog.Default()
	gen := generator.New(cat)
	val := validator.New(cat)

	candidates, err := gen.Generate(constant.TierOptimize, 5, generator.Options{Seed: 13})
	require.NoError(t, err)

	opt := New(cat, val, Config{Seed: 13})
	for _, c := range candidates {
		best := opt.Optimize(c, 80)

		root := best.Root
		require.Equal(t, generator.NormalizeOp, root.OpID)
		neutralize := root.Children[0]
		require.Equal(t, "group_neutralize", neutralize.OpID)
		assert.Equal(t, generator.NeutralizeGroup, neutralize.Children[1].FieldID)
	}
}

func TestOptimizeKeepsWindowsInBounds(t *testing.T) {
	cat, candidates, opt := newEngines(t, 55)

	for _, c := range candidates {
		best := opt.Optimize(c, 100)
		best.Root.Walk(func(n *expr.Node) {
			if n.Kind != expr.KindOperator {
				return
			}
			op, err := cat.Operator(n.OpID)
			require.NoError(t, err)
			if op.Windowed {
				assert.GreaterOrEqual(t, n.Window, op.WindowMin)
				assert.LessOrEqual(t, n.Window, op.WindowMax)
			}
		})
	}
}

func TestOptimizeZeroIterationsReturnsInputScore(t *testing.T) {
	cat, candidates, opt := newEngines(t, 2)

	c := candidates[0]
	best := opt.Optimize(c, 0)
	assert.Equal(t, Score(cat, c), best.Score)
}

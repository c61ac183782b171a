package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wq_alpha_gen/internal/catalog"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/validator"
)

func TestGenerateRejectsBadInput(t *testing.T) {
	gen := New(catalog.Default())

	_, err := gen.Generate("imaginary", 5, Options{})
	assert.ErrorIs(t, err, ErrUnknownTier)

	_, err = gen.Generate(constant.TierCreative, 0, Options{})
	assert.ErrorIs(t, err, ErrBadCount)

	_, err = gen.Generate(constant.TierBasic, -3, Options{})
	assert.ErrorIs(t, err, ErrBadCount)
}

// Every tier must produce trees that already satisfy the validator's
// structural and domain rules; generation never leans on validation to weed
// out malformed output.
func TestGeneratedCandidatesAlwaysValid(t *testing.T) {
	cat := catalog.Default()
	gen := New(cat)
	val := validator.New(cat)

	for _, tier := range constant.Tiers {
		tier := tier
		t.Run(tier, func(t *testing.T) {
			candidates, err := gen.Generate(tier, 20, Options{Seed: 42})
			require.NoError(t, err)
			require.Len(t, candidates, 20)

			for _, c := range candidates {
				report := val.Validate(c)
				assert.True(t, report.Accepted(), "violations: %+v", report.Violations)
				assert.Equal(t, tier, c.Tier)
				assert.NotEmpty(t, c.SkeletonID)

				_, err := c.Root.Render(cat)
				assert.NoError(t, err)
			}
		})
	}
}

func TestBasicTierDepth(t *testing.T) {
	gen := New(catalog.Default())

	candidates, err := gen.Generate(constant.TierBasic, 30, Options{Seed: 7})
	require.NoError(t, err)

	for _, c := range candidates {
		assert.LessOrEqual(t, c.Root.Depth(), 2)
	}
}

func TestCreativeTierDepth(t *testing.T) {
	gen := New(catalog.Default())

	candidates, err := gen.Generate(constant.TierCreative, 30, Options{Seed: 7})
	require.NoError(t, err)

	for _, c := range candidates {
		d := c.Root.Depth()
		assert.GreaterOrEqual(t, d, 3)
		assert.LessOrEqual(t, d, 5)
	}
}

// The optimize tier always wraps the creative body in the neutralization and
// normalization operators, in that order, at the root.
func TestOptimizeTierWrapping(t *testing.T) {
	gen := New(catalog.Default())

	candidates, err := gen.Generate(constant.TierOptimize, 15, Options{Seed: 99})
	require.NoError(t, err)

	for _, c := range candidates {
		root := c.Root
		require.Equal(t, NormalizeOp, root.OpID)
		require.Len(t, root.Children, 1)

		neutralize := root.Children[0]
		require.Equal(t, "group_neutralize", neutralize.OpID)
		require.Len(t, neutralize.Children, 2)
		assert.Equal(t, NeutralizeGroup, neutralize.Children[1].FieldID)

		assert.Equal(t, NeutralizeGroup, c.Neutralization)
		assert.Equal(t, NormalizeOp, c.Normalization)
	}
}

// A batch of five basic candidates over a five-skeleton set uses every
// skeleton exactly once; larger batches may repeat but never back to back.
func TestBasicBatchSkeletonDiversity(t *testing.T) {
	gen := New(catalog.Default())

	candidates, err := gen.Generate(constant.TierBasic, 5, Options{Seed: 3})
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, c := range candidates {
		seen[c.SkeletonID]++
	}
	assert.Len(t, seen, 5)

	longer, err := gen.Generate(constant.TierBasic, 25, Options{Seed: 3})
	require.NoError(t, err)
	for i := 1; i < len(longer); i++ {
		assert.NotEqual(t, longer[i-1].SkeletonID, longer[i].SkeletonID)
	}
}

// Calls are independent: the same seed reproduces the batch, different seeds
// do not share picker state.
func TestGenerateIsRestartable(t *testing.T) {
	cat := catalog.Default()
	gen := New(cat)

	first, err := gen.Generate(constant.TierCreative, 10, Options{Seed: 11})
	require.NoError(t, err)
	second, err := gen.Generate(constant.TierCreative, 10, Options{Seed: 11})
	require.NoError(t, err)

	for i := range first {
		a, err := first[i].Root.Render(cat)
		require.NoError(t, err)
		b, err := second[i].Root.Render(cat)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Equal(t, first[i].SkeletonID, second[i].SkeletonID)
	}
}

func TestGeneratedStatusIsPending(t *testing.T) {
	gen := New(catalog.Default())

	candidates, err := gen.Generate(constant.TierBasic, 3, Options{Seed: 1})
	require.NoError(t, err)
	for _, c := range candidates {
		assert.Equal(t, constant.StatusPending, c.Status)
	}
}

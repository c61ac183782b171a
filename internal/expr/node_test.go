package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wq_alpha_gen/internal/catalog"
)

func TestRender(t *testing.T) {
	cat := catalog.Default()

	tree := Apply("subtract",
		FieldRef("close"),
		ApplyWindowed("ts_mean", 20, FieldRef("volume")))

	rendered, err := tree.Render(cat)
	require.NoError(t, err)
	assert.Equal(t, "subtract(close, ts_mean(volume, 20))", rendered)
}

func TestRenderLiteral(t *testing.T) {
	cat := catalog.Default()

	tree := Apply("multiply", Apply("rank", FieldRef("close")), Literal(0.5))
	rendered, err := tree.Render(cat)
	require.NoError(t, err)
	assert.Equal(t, "multiply(rank(close), 0.5)", rendered)
}

func TestRenderErrors(t *testing.T) {
	cat := catalog.Default()

	_, err := Apply("made_up", FieldRef("close")).Render(cat)
	assert.ErrorIs(t, err, ErrUnknownOperator)

	_, err = FieldRef("made_up").Render(cat)
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = Apply("add", FieldRef("close")).Render(cat)
	assert.ErrorIs(t, err, ErrBadArity)
}

func TestDepthAndSize(t *testing.T) {
	leaf := FieldRef("close")
	assert.Equal(t, 0, leaf.Depth())
	assert.Equal(t, 1, leaf.Size())

	tree := Apply("subtract",
		FieldRef("close"),
		ApplyWindowed("ts_mean", 20, FieldRef("volume")))
	assert.Equal(t, 2, tree.Depth())
	assert.Equal(t, 4, tree.Size())
}

func TestCloneIsIndependent(t *testing.T) {
	original := Apply("divide", FieldRef("close"), FieldRef("volume"))
	clone := original.Clone()

	clone.Children[0].FieldID = "open"
	assert.Equal(t, "close", original.Children[0].FieldID)
	assert.Equal(t, "open", clone.Children[0].FieldID)
}

func TestDomain(t *testing.T) {
	cat := catalog.Default()

	d, err := Apply("rank", FieldRef("close")).Domain(cat)
	require.NoError(t, err)
	assert.Equal(t, catalog.DomainBounded, d)

	d, err = FieldRef("industry").Domain(cat)
	require.NoError(t, err)
	assert.Equal(t, catalog.DomainGrouping, d)

	d, err = Literal(1).Domain(cat)
	require.NoError(t, err)
	assert.Equal(t, catalog.DomainReal, d)
}

func TestFieldCounts(t *testing.T) {
	tree := Apply("add",
		Apply("divide", FieldRef("close"), FieldRef("close")),
		FieldRef("volume"))

	counts := tree.FieldCounts()
	assert.Equal(t, 2, counts["close"])
	assert.Equal(t, 1, counts["volume"])
}

func TestCandidateClone(t *testing.T) {
	c := NewCandidate(Apply("rank", FieldRef("close")), "basic", "cs_rank")
	c.Score = 1.5

	clone := c.Clone()
	clone.Root.Children[0].FieldID = "open"
	clone.Score = 9

	assert.Equal(t, "close", c.Root.Children[0].FieldID)
	assert.Equal(t, 1.5, c.Score)
}

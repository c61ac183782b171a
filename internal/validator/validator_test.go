package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wq_alpha_gen/internal/catalog"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/expr"
)

func candidate(tier string, root *expr.Node) *expr.Candidate {
	return expr.NewCandidate(root, tier, "test")
}

func rules(report Report) []string {
	var out []string
	for _, v := range report.Violations {
		out = append(out, v.Rule)
	}
	return out
}

func TestAcceptsWellFormedTree(t *testing.T) {
	val := New(catalog.Default())

	c := candidate(constant.TierBasic, expr.Apply("subtract",
		expr.FieldRef("close"),
		expr.ApplyWindowed("ts_mean", 20, expr.FieldRef("volume"))))

	report := val.Validate(c)
	assert.True(t, report.Accepted())
	assert.Empty(t, report.Violations)
}

func TestValidationIsIdempotent(t *testing.T) {
	val := New(catalog.Default())

	c := candidate(constant.TierBasic, expr.Apply("add",
		expr.FieldRef("close"), expr.FieldRef("close")))

	first := val.Validate(c)
	second := val.Validate(c)
	assert.Equal(t, first, second)
}

func TestNilCandidateRejected(t *testing.T) {
	val := New(catalog.Default())

	report := val.Validate(nil)
	assert.False(t, report.Accepted())
	assert.Contains(t, rules(report), RuleStructure)
}

func TestArityMismatch(t *testing.T) {
	val := New(catalog.Default())

	c := candidate(constant.TierBasic, expr.Apply("add", expr.FieldRef("close")))
	report := val.Validate(c)
	assert.False(t, report.Accepted())
	assert.Contains(t, rules(report), RuleStructure)
}

func TestUnknownOperatorAndField(t *testing.T) {
	val := New(catalog.Default())

	c := candidate(constant.TierBasic, expr.Apply("made_up", expr.FieldRef("ghost")))
	report := val.Validate(c)
	assert.False(t, report.Accepted())
	assert.Contains(t, rules(report), RuleStructure)
}

func TestWindowOutOfBounds(t *testing.T) {
	val := New(catalog.Default())

	c := candidate(constant.TierBasic,
		expr.ApplyWindowed("delay", 99, expr.FieldRef("close")))
	report := val.Validate(c)
	assert.False(t, report.Accepted())
	assert.Contains(t, rules(report), RuleStructure)
}

// Mutation can hand an operator a child domain it never accepts; the domain
// pass has to catch what construction-time checks would have prevented.
func TestDomainMismatch(t *testing.T) {
	val := New(catalog.Default())

	c := candidate(constant.TierBasic,
		expr.ApplyWindowed("ts_mean", 20, expr.FieldRef("industry")))
	report := val.Validate(c)
	assert.False(t, report.Accepted())
	assert.Contains(t, rules(report), RuleDomain)
}

func TestDepthLimit(t *testing.T) {
	val := New(catalog.Default())

	root := expr.FieldRef("close")
	for i := 0; i <= MaxDepth; i++ {
		root = expr.Apply("abs", root)
	}
	report := val.Validate(candidate(constant.TierBasic, root))
	assert.False(t, report.Accepted())
	assert.Contains(t, rules(report), RuleLimits)
}

func TestPureLiteralRejected(t *testing.T) {
	val := New(catalog.Default())

	c := candidate(constant.TierBasic,
		expr.Apply("add", expr.Literal(1), expr.Literal(2)))
	report := val.Validate(c)
	assert.False(t, report.Accepted())
	assert.Contains(t, rules(report), RuleFieldUsage)
}

func TestFieldRepetitionCap(t *testing.T) {
	val := NewWithRepeatCap(catalog.Default(), 2)

	root := expr.FieldRef("close")
	for i := 0; i < 2; i++ {
		root = expr.Apply("add", root, expr.FieldRef("close"))
	}
	report := val.Validate(candidate(constant.TierBasic, root))
	assert.False(t, report.Accepted())
	assert.Contains(t, rules(report), RuleFieldUsage)
}

func TestWrappingMustStayAtRoot(t *testing.T) {
	val := New(catalog.Default())

	inner := expr.Apply("add",
		expr.Apply("zscore", expr.FieldRef("close")),
		expr.FieldRef("open"))
	root := expr.Apply("zscore",
		expr.Apply("group_neutralize", inner, expr.FieldRef("industry")))

	c := candidate(constant.TierOptimize, root)
	c.Neutralization = "industry"
	c.Normalization = "zscore"

	report := val.Validate(c)
	assert.False(t, report.Accepted())
	assert.Contains(t, rules(report), RuleWrapping)

	// the same tree at a lower tier skips the wrapping rule
	loose := candidate(constant.TierCreative, root.Clone())
	assert.True(t, val.Validate(loose).Accepted())
}

func TestReportIsCompleteNotShortCircuit(t *testing.T) {
	val := New(catalog.Default())

	// arity breach and missing fields at once: both must be reported
	c := candidate(constant.TierBasic, expr.Apply("add", expr.Literal(1)))
	report := val.Validate(c)
	got := rules(report)
	assert.Contains(t, got, RuleStructure)
	assert.Contains(t, got, RuleFieldUsage)
}

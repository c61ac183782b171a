package validator

import (
	"fmt"

	"wq_alpha_gen/internal/catalog"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/expr"
)

// Rule identifiers carried on violations.
const (
	RuleStructure  = "structure"
	RuleDomain     = "domain"
	RuleLimits     = "limits"
	RuleFieldUsage = "field-usage"
	RuleWrapping   = "wrapping"
)

// Platform-mandated tree maxima.
const (
	MaxDepth = 8
	MaxNodes = 64
)

// DefaultFieldRepeatCap bounds how often a single field may appear in one
// expression.
const DefaultFieldRepeatCap = 4

// Violation is one rule breach. Severity reuses the platform status strings.
type Violation struct {
	Rule     string `json:"rule"`
	Reason   string `json:"reason"`
	Severity string `json:"severity"`
}

// Report is the full outcome of validating one candidate. An empty violation
// list means the candidate is accepted.
type Report struct {
	Violations []Violation `json:"violations"`
}

func (r Report) Accepted() bool {
	return len(r.Violations) == 0
}

func (r *Report) add(rule, reason string) {
	r.Violations = append(r.Violations, Violation{Rule: rule, Reason: reason, Severity: constant.SeverityError})
}

// Validator checks candidates against the platform's structural and semantic
// constraints. It holds only the read-only catalog and fixed limits, so one
// instance serves any number of concurrent callers.
type Validator struct {
	cat            *catalog.Catalog
	fieldRepeatCap int
}

func New(cat *catalog.Catalog) *Validator {
	return &Validator{cat: cat, fieldRepeatCap: DefaultFieldRepeatCap}
}

// NewWithRepeatCap overrides the per-field repetition cap.
func NewWithRepeatCap(cat *catalog.Catalog, repeatCap int) *Validator {
	return &Validator{cat: cat, fieldRepeatCap: repeatCap}
}

// Validate runs every rule group and returns the complete report. Checks do
// not short-circuit: a malformed candidate reports all of its problems at
// once. The candidate itself is not modified; the caller stamps status from
// the report.
func (v *Validator) Validate(c *expr.Candidate) Report {
	var report Report
	if c == nil || c.Root == nil {
		report.add(RuleStructure, "candidate has no expression tree")
		return report
	}

	v.checkStructure(c.Root, &report)
	v.checkDomains(c.Root, &report)
	v.checkLimits(c.Root, &report)
	v.checkFieldUsage(c.Root, &report)
	if c.Tier == constant.TierOptimize {
		v.checkWrapping(c.Root, &report)
	}
	return report
}

// checkStructure verifies arity and leaf shape for every node.
func (v *Validator) checkStructure(root *expr.Node, report *Report) {
	root.Walk(func(n *expr.Node) {
		switch n.Kind {
		case expr.KindField:
			if len(n.Children) != 0 {
				report.add(RuleStructure, fmt.Sprintf("field %s has children", n.FieldID))
			}
			if _, err := v.cat.Field(n.FieldID); err != nil {
				report.add(RuleStructure, fmt.Sprintf("unknown field %q", n.FieldID))
			}
		case expr.KindLiteral:
			if len(n.Children) != 0 {
				report.add(RuleStructure, "literal has children")
			}
		case expr.KindOperator:
			op, err := v.cat.Operator(n.OpID)
			if err != nil {
				report.add(RuleStructure, fmt.Sprintf("unknown operator %q", n.OpID))
				return
			}
			if len(n.Children) != op.Arity {
				report.add(RuleStructure,
					fmt.Sprintf("%s takes %d children, has %d", op.ID, op.Arity, len(n.Children)))
			}
			if op.Windowed && (n.Window < op.WindowMin || n.Window > op.WindowMax) {
				report.add(RuleStructure,
					fmt.Sprintf("%s window %d outside [%d, %d]", op.ID, n.Window, op.WindowMin, op.WindowMax))
			}
		}
	})
}

// checkDomains re-verifies the construction-time invariant that every
// operator accepts its children's output domains. The optimizer mutates
// trees after construction, so this is checked again independently here.
func (v *Validator) checkDomains(root *expr.Node, report *Report) {
	root.Walk(func(n *expr.Node) {
		if n.Kind != expr.KindOperator {
			return
		}
		op, err := v.cat.Operator(n.OpID)
		if err != nil {
			return // reported by the structure pass
		}
		for i, child := range n.Children {
			d, err := child.Domain(v.cat)
			if err != nil {
				continue
			}
			if !op.Accepts(i, d) {
				report.add(RuleDomain,
					fmt.Sprintf("%s does not accept %s input at position %d", op.ID, d, i+1))
			}
		}
	})
}

func (v *Validator) checkLimits(root *expr.Node, report *Report) {
	if d := root.Depth(); d > MaxDepth {
		report.add(RuleLimits, fmt.Sprintf("depth %d exceeds maximum %d", d, MaxDepth))
	}
	if s := root.Size(); s > MaxNodes {
		report.add(RuleLimits, fmt.Sprintf("%d nodes exceeds maximum %d", s, MaxNodes))
	}
}

func (v *Validator) checkFieldUsage(root *expr.Node, report *Report) {
	counts := root.FieldCounts()
	if len(counts) == 0 {
		report.add(RuleFieldUsage, "expression references no data fields")
		return
	}
	for id, n := range counts {
		if n > v.fieldRepeatCap {
			report.add(RuleFieldUsage,
				fmt.Sprintf("field %s referenced %d times, cap is %d", id, n, v.fieldRepeatCap))
		}
	}
}

// checkWrapping enforces the optimize-tier contract: the normalizing and
// neutralizing operators may appear only as the outermost wrappers, never
// nested inside the expression body.
func (v *Validator) checkWrapping(root *expr.Node, report *Report) {
	inner := root
	if inner.Kind == expr.KindOperator && v.isNormalizer(inner.OpID) && len(inner.Children) == 1 {
		inner = inner.Children[0]
	}
	if inner.Kind == expr.KindOperator && inner.OpID == "group_neutralize" && len(inner.Children) > 0 {
		inner = inner.Children[0]
	}
	inner.Walk(func(n *expr.Node) {
		if n.Kind != expr.KindOperator {
			return
		}
		if n.OpID == "group_neutralize" || v.isNormalizer(n.OpID) {
			report.add(RuleWrapping,
				fmt.Sprintf("%s must wrap the expression at the root, not nested", n.OpID))
		}
	})
}

func (v *Validator) isNormalizer(opID string) bool {
	return opID == "zscore"
}

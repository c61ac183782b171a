package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"wq_alpha_gen/internal/catalog"
)

type NodeKind int

const (
	KindField NodeKind = iota
	KindLiteral
	KindOperator
)

var (
	ErrUnknownOperator = errors.New("expr: node references unknown operator")
	ErrUnknownField    = errors.New("expr: node references unknown field")
	ErrBadArity        = errors.New("expr: child count does not match operator arity")
)

// Node is one vertex of an expression tree. A node owns its children
// exclusively; trees never share subtrees or form cycles.
type Node struct {
	Kind     NodeKind
	FieldID  string  // KindField
	Value    float64 // KindLiteral
	OpID     string  // KindOperator
	Window   int     // windowed operators only
	Children []*Node
}

func FieldRef(id string) *Node {
	return &Node{Kind: KindField, FieldID: id}
}

func Literal(v float64) *Node {
	return &Node{Kind: KindLiteral, Value: v}
}

func Apply(opID string, children ...*Node) *Node {
	return &Node{Kind: KindOperator, OpID: opID, Children: children}
}

func ApplyWindowed(opID string, window int, child *Node) *Node {
	return &Node{Kind: KindOperator, OpID: opID, Window: window, Children: []*Node{child}}
}

// Clone deep-copies the tree so mutation of the copy never touches the
// original.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:    n.Kind,
		FieldID: n.FieldID,
		Value:   n.Value,
		OpID:    n.OpID,
		Window:  n.Window,
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// Depth counts operator nesting levels; a bare leaf has depth 0.
func (n *Node) Depth() int {
	if n == nil || len(n.Children) == 0 {
		return 0
	}
	max := 0
	for _, child := range n.Children {
		if d := child.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// Size counts every node in the tree.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += child.Size()
	}
	return total
}

// Walk visits the tree pre-order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Domain resolves the node's output domain against the catalog.
func (n *Node) Domain(cat *catalog.Catalog) (catalog.Domain, error) {
	switch n.Kind {
	case KindField:
		f, err := cat.Field(n.FieldID)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnknownField, n.FieldID)
		}
		return f.Domain, nil
	case KindLiteral:
		return catalog.DomainReal, nil
	default:
		op, err := cat.Operator(n.OpID)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnknownOperator, n.OpID)
		}
		return op.Output, nil
	}
}

// Render produces the single-line FASTEXPR formula by substituting child
// renderings into the operator templates. Rendering is one-way; the service
// never parses platform text back into a tree.
func (n *Node) Render(cat *catalog.Catalog) (string, error) {
	switch n.Kind {
	case KindField:
		if _, err := cat.Field(n.FieldID); err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnknownField, n.FieldID)
		}
		return n.FieldID, nil
	case KindLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64), nil
	}

	op, err := cat.Operator(n.OpID)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperator, n.OpID)
	}
	if len(n.Children) != op.Arity {
		return "", fmt.Errorf("%w: %s wants %d, has %d", ErrBadArity, op.ID, op.Arity, len(n.Children))
	}

	pairs := make([]string, 0, 2*(op.Arity+1))
	for i, child := range n.Children {
		rendered, err := child.Render(cat)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, fmt.Sprintf("{%d}", i+1), rendered)
	}
	if op.Windowed {
		pairs = append(pairs, "{w}", strconv.Itoa(n.Window))
	}
	return strings.NewReplacer(pairs...).Replace(op.Template), nil
}

// FieldCounts tallies how many times each field id appears in the tree.
func (n *Node) FieldCounts() map[string]int {
	counts := make(map[string]int)
	n.Walk(func(node *Node) {
		if node.Kind == KindField {
			counts[node.FieldID]++
		}
	})
	return counts
}

package catalog

import (
	"errors"
	"fmt"
)

// Domain is the numeric domain a field or operator output lives in.
type Domain string

const (
	DomainReal     Domain = "real"     // unbounded real-valued series
	DomainBounded  Domain = "bounded"  // rank-like, bounded series
	DomainGrouping Domain = "grouping" // categorical bucketing, e.g. industry
)

// Category is the semantic family of a data field.
type Category string

const (
	CategoryPrice       Category = "price"
	CategoryVolume      Category = "volume"
	CategoryFundamental Category = "fundamental"
	CategoryAnalyst     Category = "analyst"
	CategoryModel       Category = "model"
	CategoryNews        Category = "news"
	CategoryGroup       Category = "group"
)

// Kind is the operator family the platform documents them under.
type Kind string

const (
	KindTimeSeries     Kind = "time-series"
	KindCrossSectional Kind = "cross-sectional"
	KindArithmetic     Kind = "arithmetic"
	KindGroup          Kind = "group"
	KindTransform      Kind = "transform"
)

var (
	ErrDuplicateField    = errors.New("catalog: duplicate field id")
	ErrDuplicateOperator = errors.New("catalog: duplicate operator id")
	ErrUnknownDomain     = errors.New("catalog: unknown domain")
	ErrBadOperator       = errors.New("catalog: malformed operator")
	ErrFieldNotFound     = errors.New("catalog: field not found")
	ErrOperatorNotFound  = errors.New("catalog: operator not found")
)

// Field is one immutable data-field entry.
type Field struct {
	ID       string
	Category Category
	Domain   Domain
}

// Operator is one immutable operator entry. Windowed operators take a single
// child plus an integer window rendered through the {w} placeholder.
// Template placeholders: {1}..{n} for children, {w} for the window.
type Operator struct {
	ID        string
	Kind      Kind
	Arity     int
	Windowed  bool
	WindowMin int
	WindowMax int
	Inputs    []Domain
	Output    Domain
	Template  string
}

// Accepts reports whether the operator takes a child of domain d at position
// pos (0-based). Group operators take the grouping field in their last
// position and any numeric series elsewhere; all other operators accept any
// of their declared input domains at any position.
func (op Operator) Accepts(pos int, d Domain) bool {
	if op.Kind == KindGroup {
		if pos == op.Arity-1 {
			return d == DomainGrouping
		}
		return d == DomainReal || d == DomainBounded
	}
	for _, in := range op.Inputs {
		if in == d {
			return true
		}
	}
	return false
}

// Catalog is the read-only field/operator registry. Built once at startup and
// shared by reference; safe for concurrent readers.
type Catalog struct {
	fields    map[string]Field
	operators map[string]Operator
	fieldIDs  []string
	opIDs     []string
}

// New builds a catalog from explicit tables, rejecting malformed definitions.
func New(fields []Field, operators []Operator) (*Catalog, error) {
	c := &Catalog{
		fields:    make(map[string]Field, len(fields)),
		operators: make(map[string]Operator, len(operators)),
	}
	for _, f := range fields {
		if _, ok := c.fields[f.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.ID)
		}
		if !knownDomain(f.Domain) {
			return nil, fmt.Errorf("%w: field %s declares %q", ErrUnknownDomain, f.ID, f.Domain)
		}
		c.fields[f.ID] = f
		c.fieldIDs = append(c.fieldIDs, f.ID)
	}
	for _, op := range operators {
		if _, ok := c.operators[op.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOperator, op.ID)
		}
		if op.Arity < 1 {
			return nil, fmt.Errorf("%w: %s has arity %d", ErrBadOperator, op.ID, op.Arity)
		}
		if op.Windowed && (op.WindowMin < 1 || op.WindowMax < op.WindowMin) {
			return nil, fmt.Errorf("%w: %s window bounds [%d,%d]", ErrBadOperator, op.ID, op.WindowMin, op.WindowMax)
		}
		if len(op.Inputs) == 0 {
			return nil, fmt.Errorf("%w: %s declares no input domains", ErrBadOperator, op.ID)
		}
		for _, in := range op.Inputs {
			if !knownDomain(in) {
				return nil, fmt.Errorf("%w: operator %s accepts %q", ErrUnknownDomain, op.ID, in)
			}
		}
		if !knownDomain(op.Output) {
			return nil, fmt.Errorf("%w: operator %s produces %q", ErrUnknownDomain, op.ID, op.Output)
		}
		c.operators[op.ID] = op
		c.opIDs = append(c.opIDs, op.ID)
	}
	return c, nil
}

func knownDomain(d Domain) bool {
	switch d {
	case DomainReal, DomainBounded, DomainGrouping:
		return true
	}
	return false
}

func (c *Catalog) Field(id string) (Field, error) {
	f, ok := c.fields[id]
	if !ok {
		return Field{}, fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	return f, nil
}

func (c *Catalog) Operator(id string) (Operator, error) {
	op, ok := c.operators[id]
	if !ok {
		return Operator{}, fmt.Errorf("%w: %s", ErrOperatorNotFound, id)
	}
	return op, nil
}

// Fields returns every field in registration order.
func (c *Catalog) Fields() []Field {
	out := make([]Field, 0, len(c.fieldIDs))
	for _, id := range c.fieldIDs {
		out = append(out, c.fields[id])
	}
	return out
}

// Operators returns every operator in registration order.
func (c *Catalog) Operators() []Operator {
	out := make([]Operator, 0, len(c.opIDs))
	for _, id := range c.opIDs {
		out = append(out, c.operators[id])
	}
	return out
}

func (c *Catalog) FieldsByCategory(cat Category) []Field {
	var out []Field
	for _, id := range c.fieldIDs {
		if f := c.fields[id]; f.Category == cat {
			out = append(out, f)
		}
	}
	return out
}

func (c *Catalog) FieldsByDomain(d Domain) []Field {
	var out []Field
	for _, id := range c.fieldIDs {
		if f := c.fields[id]; f.Domain == d {
			out = append(out, f)
		}
	}
	return out
}

func (c *Catalog) OperatorsByKind(k Kind) []Operator {
	var out []Operator
	for _, id := range c.opIDs {
		if op := c.operators[id]; op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// OperatorsByArity returns operators of the given arity, windowed or not.
func (c *Catalog) OperatorsByArity(arity int) []Operator {
	var out []Operator
	for _, id := range c.opIDs {
		if op := c.operators[id]; op.Arity == arity {
			out = append(out, op)
		}
	}
	return out
}

// CompatibleOperators returns operators whose every input position accepts
// the given child domain.
func (c *Catalog) CompatibleOperators(d Domain) []Operator {
	var out []Operator
	for _, id := range c.opIDs {
		op := c.operators[id]
		ok := true
		for pos := 0; pos < op.Arity; pos++ {
			if !op.Accepts(pos, d) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, op)
		}
	}
	return out
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLoads(t *testing.T) {
	cat := Default()

	require.NotEmpty(t, cat.Fields())
	require.NotEmpty(t, cat.Operators())

	f, err := cat.Field("close")
	require.NoError(t, err)
	assert.Equal(t, CategoryPrice, f.Category)
	assert.Equal(t, DomainReal, f.Domain)

	op, err := cat.Operator("ts_mean")
	require.NoError(t, err)
	assert.True(t, op.Windowed)
	assert.Equal(t, 5, op.WindowMin)
	assert.Equal(t, 250, op.WindowMax)

	_, err = cat.Field("nope")
	assert.ErrorIs(t, err, ErrFieldNotFound)
	_, err = cat.Operator("nope")
	assert.ErrorIs(t, err, ErrOperatorNotFound)
}

func TestNewRejectsMalformedTables(t *testing.T) {
	goodField := Field{ID: "close", Category: CategoryPrice, Domain: DomainReal}
	goodOp := Operator{ID: "rank", Kind: KindCrossSectional, Arity: 1, Inputs: []Domain{DomainReal}, Output: DomainBounded, Template: "rank({1})"}

	tests := []struct {
		name    string
		fields  []Field
		ops     []Operator
		wantErr error
	}{
		{
			name:    "duplicate field id",
			fields:  []Field{goodField, goodField},
			ops:     []Operator{goodOp},
			wantErr: ErrDuplicateField,
		},
		{
			name:    "duplicate operator id",
			fields:  []Field{goodField},
			ops:     []Operator{goodOp, goodOp},
			wantErr: ErrDuplicateOperator,
		},
		{
			name:    "field with unknown domain",
			fields:  []Field{{ID: "x", Category: CategoryPrice, Domain: "imaginary"}},
			ops:     []Operator{goodOp},
			wantErr: ErrUnknownDomain,
		},
		{
			name:    "operator with unknown input domain",
			fields:  []Field{goodField},
			ops:     []Operator{{ID: "x", Kind: KindArithmetic, Arity: 1, Inputs: []Domain{"imaginary"}, Output: DomainReal, Template: "x({1})"}},
			wantErr: ErrUnknownDomain,
		},
		{
			name:    "operator with zero arity",
			fields:  []Field{goodField},
			ops:     []Operator{{ID: "x", Kind: KindArithmetic, Arity: 0, Inputs: []Domain{DomainReal}, Output: DomainReal, Template: "x()"}},
			wantErr: ErrBadOperator,
		},
		{
			name:    "windowed operator with inverted bounds",
			fields:  []Field{goodField},
			ops:     []Operator{{ID: "x", Kind: KindTimeSeries, Arity: 1, Windowed: true, WindowMin: 20, WindowMax: 5, Inputs: []Domain{DomainReal}, Output: DomainReal, Template: "x({1}, {w})"}},
			wantErr: ErrBadOperator,
		},
		{
			name:    "operator with no inputs",
			fields:  []Field{goodField},
			ops:     []Operator{{ID: "x", Kind: KindArithmetic, Arity: 1, Output: DomainReal, Template: "x({1})"}},
			wantErr: ErrBadOperator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fields, tt.ops)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLookups(t *testing.T) {
	cat := Default()

	for _, f := range cat.FieldsByCategory(CategoryPrice) {
		assert.Equal(t, CategoryPrice, f.Category)
	}
	assert.NotEmpty(t, cat.FieldsByCategory(CategoryFundamental))

	for _, f := range cat.FieldsByDomain(DomainGrouping) {
		assert.Equal(t, DomainGrouping, f.Domain)
	}

	for _, op := range cat.OperatorsByArity(2) {
		assert.Equal(t, 2, op.Arity)
	}
	assert.NotEmpty(t, cat.OperatorsByKind(KindTimeSeries))

	// every operator compatible with a real child must accept it everywhere
	for _, op := range cat.CompatibleOperators(DomainReal) {
		for pos := 0; pos < op.Arity; pos++ {
			assert.True(t, op.Accepts(pos, DomainReal), op.ID)
		}
	}
}

func TestGroupOperatorAccepts(t *testing.T) {
	cat := Default()
	op, err := cat.Operator("group_neutralize")
	require.NoError(t, err)

	assert.True(t, op.Accepts(0, DomainReal))
	assert.True(t, op.Accepts(0, DomainBounded))
	assert.False(t, op.Accepts(0, DomainGrouping))
	assert.True(t, op.Accepts(1, DomainGrouping))
	assert.False(t, op.Accepts(1, DomainReal))
}

package formula

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catchContract runs fn and returns the ContractError it panics with.
func catchContract(t *testing.T, fn func()) (ce *ContractError) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.As(err, &ce), "panic value %v is not a ContractError", r)
	}()
	fn()
	return nil
}

func mustBox(t *testing.T, f Formula) *Box {
	t.Helper()
	b, ok := f.(*Box)
	require.True(t, ok, "expected *Box, got %T (%s)", f, f)
	return b
}

func TestBoxMergesSameModality(t *testing.T) {
	t.Parallel()
	p := NewAtom("p")

	b := mustBox(t, NewBox(1, 2, NewBox(1, 3, p)))
	assert.Equal(t, 1, b.Modality())
	assert.Equal(t, 5, b.Power())
	assert.Same(t, p, b.Subformula())

	other := mustBox(t, NewBox(1, 1, NewBox(2, 1, p)))
	assert.Equal(t, 1, other.Power())
	assert.Equal(t, KindBox, other.Subformula().Kind())
}

func TestBoxZeroPowerIsSubformula(t *testing.T) {
	t.Parallel()
	p := NewAtom("p")
	assert.Same(t, p, NewBox(3, 0, p))
}

func TestBoxRejectsBadArguments(t *testing.T) {
	t.Parallel()

	ce := catchContract(t, func() { NewBox(1, -1, NewAtom("p")) })
	assert.ErrorIs(t, ce, ErrNegativePower)

	ce = catchContract(t, func() { NewBox(1, 1, nil) })
	assert.ErrorIs(t, ce, ErrNilSubformula)
}

func TestBoxRender(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[1][1][1]p", NewBox(1, 3, NewAtom("p")).String())
	assert.Equal(t, "[2]¬q", NewBox(2, 1, NewNot(NewAtom("q"))).String())
}

func TestBoxChain(t *testing.T) {
	t.Parallel()
	p := NewAtom("p")

	assert.Equal(t, "[1][2][3]p", NewBoxChain([]int{1, 2, 3}, p).String())
	assert.Same(t, p, NewBoxChain(nil, p))

	merged := mustBox(t, NewBoxChain([]int{4, 4, 5}, p))
	assert.Equal(t, 4, merged.Modality())
	assert.Equal(t, 2, merged.Power())
	assert.Equal(t, "[4][4][5]p", merged.String())
}

func TestBoxNegate(t *testing.T) {
	t.Parallel()
	p := NewAtom("p")

	for _, s5 := range []bool{false, true} {
		b := NewBox(1, 2, p, WithS5(s5))
		d, ok := b.Negate().(*Diamond)
		require.True(t, ok)
		assert.Equal(t, 1, d.Modality())
		assert.Equal(t, 2, d.Power())
		assert.Equal(t, s5, d.S5())
		assert.True(t, d.Subformula().Equal(NewNot(p)))

		assert.True(t, b.Negate().Negate().Equal(b), "double negation of %s", b)
	}
}

func TestBoxNegatedNormalForm(t *testing.T) {
	t.Parallel()
	p, q := NewAtom("p"), NewAtom("q")

	b := NewBox(1, 1, NewNot(NewAnd(p, q)))
	want := NewBox(1, 1, NewOr(NewNot(p), NewNot(q)))
	assert.True(t, Equal(want, b.NegatedNormalForm()), "got %s", b.NegatedNormalForm())

	plain := NewBox(1, 1, NewNot(p))
	assert.Same(t, plain, plain.NegatedNormalForm())
}

func TestBoxTailNormalFormPanics(t *testing.T) {
	t.Parallel()
	ce := catchContract(t, func() { NewBox(1, 1, NewAtom("p")).TailNormalForm() })
	assert.ErrorIs(t, ce, ErrTailNormalForm)
	assert.Equal(t, KindBox, ce.Kind)
}

func TestBoxSimplify(t *testing.T) {
	t.Parallel()
	p, q := NewAtom("p"), NewAtom("q")

	tests := []struct {
		name string
		in   Formula
		want Formula
	}{
		{
			name: "box over diamond becomes diamond",
			in:   NewBox(1, 2, NewDiamond(2, 1, p)),
			want: NewDiamond(2, 3, p),
		},
		{
			name: "box over diamond keeps the diamond's S5 flag",
			in:   NewBox(1, 1, NewDiamond(1, 1, p, WithS5(true))),
			want: NewDiamond(1, 2, p, WithS5(true)),
		},
		{
			name: "same modality surfaced by simplification merges",
			in:   NewBox(1, 1, NewNot(NewNot(NewBox(1, 1, q)))),
			want: NewBox(1, 2, q),
		},
		{
			name: "other modality is kept nested",
			in:   NewBox(1, 1, NewNot(NewNot(NewBox(2, 1, q)))),
			want: NewBox(1, 1, NewBox(2, 1, q)),
		},
		{
			name: "subformula is simplified",
			in:   NewBox(1, 1, NewAnd(p, TrueConstant())),
			want: NewBox(1, 1, p),
		},
		{
			name: "S5 flag survives a rebuild",
			in:   NewBox(1, 1, NewAnd(p, TrueConstant()), WithS5(true)),
			want: NewBox(1, 1, p, WithS5(true)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Simplify()
			assert.True(t, Equal(tt.want, got), "Expected %s, got %s", tt.want, got)
		})
	}
}

func TestBoxSimplifyUnchangedIsShared(t *testing.T) {
	t.Parallel()
	b := NewBox(1, 2, NewOr(NewAtom("p"), NewAtom("q")))
	assert.Same(t, b, b.Simplify())
}

func TestBoxModalFlatten(t *testing.T) {
	t.Parallel()
	p := NewAtom("p")

	// flatten never applies the cross-operator rewrite
	b := NewBox(1, 1, NewDiamond(1, 1, p))
	assert.Same(t, b, b.ModalFlatten())

	nested := NewAnd(NewBox(1, 2, p), NewDiamond(2, 1, NewBox(2, 1, p)))
	assert.Same(t, nested, nested.ModalFlatten())
}

func TestBoxAxiomSimplify(t *testing.T) {
	t.Parallel()
	p := NewAtom("p")

	tests := []struct {
		name  string
		in    Formula
		depth int
		want  Formula
	}{
		{"top level keeps at most two", NewBox(1, 5, p), 0, NewBox(1, 2, p)},
		{"top level single stays", NewBox(1, 1, p), 0, NewBox(1, 1, p)},
		{"nested collapses to one", NewBox(1, 5, p), 1, NewBox(1, 1, p)},
		{"inner operators see the accumulated depth", NewBox(1, 1, NewBox(2, 3, p)), 0, NewBox(1, 1, NewBox(2, 1, p))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.AxiomSimplify(AxiomK, tt.depth)
			assert.True(t, Equal(tt.want, got), "Expected %s, got %s", tt.want, got)
		})
	}
}

func TestBoxReduced(t *testing.T) {
	t.Parallel()
	p := NewAtom("p")

	b := mustBox(t, NewBox(1, 2, p, WithS5(true)))
	r := mustBox(t, b.Reduced())
	assert.Equal(t, 1, r.Power())
	assert.True(t, r.S5())
	assert.Equal(t, 2, b.Power(), "receiver must not change")

	assert.Same(t, p, mustBox(t, NewBox(1, 1, p)).Reduced())
}

func TestBoxClone(t *testing.T) {
	t.Parallel()
	b := mustBox(t, NewBox(1, 2, NewAtom("p"), WithS5(true)))
	c := mustBox(t, b.Clone())

	assert.NotSame(t, b, c)
	assert.NotSame(t, b.Subformula(), c.Subformula())
	assert.True(t, b.Equal(c))
	assert.Equal(t, b.Hash(), c.Hash())
}

// Box equality includes the S5 flag, the same rule Diamond uses.
func TestBoxEqualityIncludesS5(t *testing.T) {
	t.Parallel()
	p := NewAtom("p")
	k := NewBox(1, 1, p)
	s5 := NewBox(1, 1, p, WithS5(true))

	assert.False(t, k.Equal(s5))
	assert.False(t, Equal(k, s5))
	assert.NotEqual(t, k.Hash(), s5.Hash())
	assert.True(t, s5.Equal(NewBox(1, 1, NewAtom("p"), WithS5(true))))
}

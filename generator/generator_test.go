package generator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/kripke-modal/formula"
)

func atomNames(f formula.Formula, out map[string]bool) {
	switch f := f.(type) {
	case *formula.Atom:
		out[f.Name()] = true
	case *formula.Not:
		atomNames(f.Subformula(), out)
	case *formula.And:
		for _, op := range f.Operands() {
			atomNames(op, out)
		}
	case *formula.Or:
		for _, op := range f.Operands() {
			atomNames(op, out)
		}
	case *formula.Box:
		atomNames(f.Subformula(), out)
	case *formula.Diamond:
		atomNames(f.Subformula(), out)
	}
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"negative depth", func(p *Params) { p.Depth = -1 }},
		{"no clauses", func(p *Params) { p.Clauses = 0 }},
		{"no variables", func(p *Params) { p.Variables = 0 }},
		{"no modalities", func(p *Params) { p.Modalities = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			assert.Error(t, p.Validate())
			_, err := New(p, 1)
			assert.Error(t, err)
		})
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	t.Parallel()
	a, err := New(DefaultParams(), 42)
	require.NoError(t, err)
	b, err := New(DefaultParams(), 42)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		fa, fb := a.Formula(), b.Formula()
		assert.True(t, formula.Equal(fa, fb), "Expected %s, got %s", fa, fb)
	}
}

func TestGeneratorRespectsParams(t *testing.T) {
	t.Parallel()
	params := DefaultParams()
	params.Variables = 3
	params.Modalities = 2
	g, err := New(params, 7)
	require.NoError(t, err)

	name := regexp.MustCompile(`^A[1-3]$`)
	for i := 0; i < 50; i++ {
		clauses := g.Clauses()
		require.NotEmpty(t, clauses)
		assert.LessOrEqual(t, len(clauses), params.Clauses)

		for j, c := range clauses {
			assert.LessOrEqual(t, formula.Measure(c).ModalDepth, params.Depth, "%s", c)
			for k := j + 1; k < len(clauses); k++ {
				assert.False(t, formula.Equal(c, clauses[k]), "duplicate clause %s", c)
			}
		}

		names := map[string]bool{}
		atomNames(formula.NewAnd(clauses...), names)
		for n := range names {
			assert.Regexp(t, name, n)
		}
	}
}

func TestGeneratorZeroDepthIsPropositional(t *testing.T) {
	t.Parallel()
	params := DefaultParams()
	params.Depth = 0
	g, err := New(params, 3)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		st := formula.Measure(g.Formula())
		assert.Zero(t, st.ModalDepth)
		assert.Zero(t, st.Boxes)
		assert.Zero(t, st.Diamonds)
	}
}

func TestGeneratorMarksS5Boxes(t *testing.T) {
	t.Parallel()
	params := DefaultParams()
	params.S5 = true
	g, err := New(params, 11)
	require.NoError(t, err)

	var walk func(formula.Formula)
	seen := 0
	walk = func(f formula.Formula) {
		switch f := f.(type) {
		case *formula.Box:
			seen++
			assert.True(t, f.S5())
			walk(f.Subformula())
		case *formula.Not:
			walk(f.Subformula())
		case *formula.And:
			for _, op := range f.Operands() {
				walk(op)
			}
		case *formula.Or:
			for _, op := range f.Operands() {
				walk(op)
			}
		}
	}
	for i := 0; i < 10; i++ {
		walk(g.Formula())
	}
	assert.Positive(t, seen)
}

func TestSampleFallsBackOnZeroWeights(t *testing.T) {
	t.Parallel()
	g, err := New(DefaultParams(), 1)
	require.NoError(t, err)

	assert.Equal(t, 5, g.sample([]float64{0, 0}, 5))
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, g.sample([]float64{0, 3, 0}, 0))
	}
	assert.Equal(t, 3, g.length(len(g.params.ClauseDist)))
	assert.Zero(t, g.propNum(len(g.params.PropDist), 1))
}

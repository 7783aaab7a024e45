package kripke

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfielding/kripke-modal/formula"
)

// The rewrite passes are checked against the semantics: every pass must
// keep the set of satisfying states unchanged on models of the logic it
// assumes.

func randomFormula(r *rand.Rand, depth int, modalities []int) formula.Formula {
	if depth <= 0 {
		switch r.IntN(8) {
		case 0:
			return formula.TrueConstant()
		case 1:
			return formula.FalseConstant()
		default:
			return formula.NewAtom([]string{"p", "q"}[r.IntN(2)])
		}
	}
	sub := func() formula.Formula { return randomFormula(r, depth-1, modalities) }
	mod := modalities[r.IntN(len(modalities))]
	switch r.IntN(5) {
	case 0:
		return formula.NewNot(sub())
	case 1:
		return formula.NewAnd(sub(), sub())
	case 2:
		return formula.NewOr(sub(), sub())
	case 3:
		return formula.NewBox(mod, 1+r.IntN(3), sub(), formula.WithS5(r.IntN(2) == 0))
	default:
		return formula.NewDiamond(mod, 1+r.IntN(3), sub(), formula.WithS5(r.IntN(2) == 0))
	}
}

func TestNegationPassesAreSound(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 13))
	mods := []int{1, 2}
	for i := 0; i < 300; i++ {
		m := RandomModel(r, 1+r.IntN(5), mods, []string{"p", "q"}, 0.4)
		f := randomFormula(r, 4, mods)

		require.True(t, m.Equivalent(f, f.NegatedNormalForm()), "nnf changed meaning of %s", f)
		require.True(t, m.Equivalent(f, f.ModalFlatten()), "flatten changed meaning of %s", f)
		require.True(t,
			m.Sat(f.Negate()).Equals(Universe(m).Difference(m.Sat(f))),
			"negate of %s is not its complement", f)
		if k := f.Kind(); k != formula.KindBox && k != formula.KindDiamond {
			require.True(t, m.Equivalent(f, f.TailNormalForm()), "tnf changed meaning of %s", f)
		}
	}
}

func TestSimplifyIsSoundInS5(t *testing.T) {
	r := rand.New(rand.NewPCG(17, 19))
	mods := []int{1}
	for i := 0; i < 300; i++ {
		m := RandomS5Model(r, 1+r.IntN(5), mods, []string{"p", "q"})
		f := randomFormula(r, 4, mods)
		s := f.Simplify()
		require.True(t, m.Equivalent(f, s), "%s simplified to %s", f, s)
	}
}

func TestAxiomClampIsSoundInS5(t *testing.T) {
	r := rand.New(rand.NewPCG(23, 29))
	mods := []int{1}
	for i := 0; i < 300; i++ {
		m := RandomS5Model(r, 1+r.IntN(5), mods, []string{"p", "q"})
		f := randomFormula(r, 4, mods)
		for _, ax := range []formula.Axiom{formula.AxiomK, formula.AxiomT, formula.Axiom4, formula.Axiom5} {
			s := f.AxiomSimplify(ax, 0)
			require.True(t, m.Equivalent(f, s), "axiom %s: %s became %s", ax, f, s)
		}
	}
}

func TestDiamondFalseCollapseIsSoundInK(t *testing.T) {
	r := rand.New(rand.NewPCG(31, 37))
	for i := 0; i < 50; i++ {
		m := RandomModel(r, 1+r.IntN(5), []int{1}, []string{"p"}, 0.5)
		f := formula.NewDiamond(1, 1+r.IntN(3), formula.FalseConstant())
		require.True(t, m.Equivalent(f, f.Simplify()))
	}
}

// Package generator produces random modal 3CNF formulas following the
// scheme of Giunchiglia et al. (2000): L distinct clauses whose literals are
// either propositional atoms or boxes over clauses of smaller depth.
package generator

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/rfielding/kripke-modal/formula"
)

// maxClauseAttempts bounds the retries for a clause without repeated atoms.
const maxClauseAttempts = 100

// Params configures the generator.
type Params struct {
	Depth      int // d: modal depth
	Clauses    int // L: clauses in the top-level conjunction
	Variables  int // N: propositional atoms A1..AN
	Modalities int // m: box indices 1..m

	// ClauseDist[d] weights clause lengths 1..len(ClauseDist[d]) at depth d.
	ClauseDist [][]float64
	// PropDist[d][K-1] weights the number of propositional literals
	// 0..len-1 in a clause of length K at depth d.
	PropDist [][][]float64

	// S5 marks the generated boxes as S5 operators.
	S5 bool
}

// DefaultParams returns d=2, L=4, N=4, m=1 with the standard distributions.
func DefaultParams() Params {
	return Params{
		Depth:      2,
		Clauses:    4,
		Variables:  4,
		Modalities: 1,
		ClauseDist: [][]float64{{0, 2, 2}, {2, 4}, {6}},
		PropDist: [][][]float64{
			{{}, {0, 2, 0}, {0, 2, 0, 0}},
			{{2, 0}, {0, 4, 0}},
		},
	}
}

// Validate checks the scalar parameters.
func (p Params) Validate() error {
	switch {
	case p.Depth < 0:
		return fmt.Errorf("depth must be non-negative, got %d", p.Depth)
	case p.Clauses < 1:
		return fmt.Errorf("number of clauses must be at least 1, got %d", p.Clauses)
	case p.Variables < 1:
		return fmt.Errorf("number of variables must be at least 1, got %d", p.Variables)
	case p.Modalities < 1:
		return fmt.Errorf("number of modalities must be at least 1, got %d", p.Modalities)
	}
	return nil
}

// Generator draws formulas from a seeded source. It is not safe for
// concurrent use.
type Generator struct {
	params Params
	rng    *rand.Rand
}

func New(params Params, seed uint64) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator params: %w", err)
	}
	return &Generator{
		params: params,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Formula returns the conjunction of a fresh set of clauses.
func (g *Generator) Formula() formula.Formula {
	return formula.NewAnd(g.Clauses()...)
}

// Clauses returns up to L distinct random clauses at the configured depth.
// Fewer are returned when 10·L draws do not yield L distinct ones.
func (g *Generator) Clauses() []formula.Formula {
	seen, err := formula.NewInterner(4 * g.params.Clauses)
	if err != nil {
		panic(err)
	}
	var clauses []formula.Formula
	for attempts := 0; len(clauses) < g.params.Clauses && attempts < 10*g.params.Clauses; attempts++ {
		c := g.clause(g.params.Depth)
		if _, dup := seen.Intern(c); dup {
			continue
		}
		clauses = append(clauses, c)
	}
	return clauses
}

func (g *Generator) propositionalAtom() formula.Formula {
	return formula.NewAtom(fmt.Sprintf("A%d", 1+g.rng.IntN(g.params.Variables)))
}

// atom is a propositional atom at depth 0 and a box over a clause otherwise.
func (g *Generator) atom(d int) formula.Formula {
	if d == 0 {
		return g.propositionalAtom()
	}
	return formula.NewBox(1+g.rng.IntN(g.params.Modalities), 1, g.clause(d-1), formula.WithS5(g.params.S5))
}

func (g *Generator) literal(a formula.Formula) formula.Formula {
	if g.rng.IntN(2) == 0 {
		return formula.NewNot(a)
	}
	return a
}

func (g *Generator) clause(d int) formula.Formula {
	var atoms, lits []formula.Formula
	for attempt := 0; attempt < maxClauseAttempts; attempt++ {
		k := g.length(d)
		p := min(g.propNum(d, k), k)

		atoms, lits = atoms[:0], lits[:0]
		for j := 0; j < k; j++ {
			var a formula.Formula
			if j < p {
				a = g.propositionalAtom()
			} else {
				a = g.atom(d)
			}
			atoms = append(atoms, a)
			lits = append(lits, g.literal(a))
		}
		if distinct(atoms) {
			break
		}
	}
	// a clause that kept repeating atoms is used as last drawn
	sort.SliceStable(lits, func(i, j int) bool { return lits[i].String() < lits[j].String() })
	return formula.NewOr(lits...)
}

func distinct(atoms []formula.Formula) bool {
	for i := range atoms {
		for j := i + 1; j < len(atoms); j++ {
			if formula.Equal(atoms[i], atoms[j]) {
				return false
			}
		}
	}
	return true
}

// length draws a clause length from ClauseDist[d], defaulting to 3.
func (g *Generator) length(d int) int {
	if d >= len(g.params.ClauseDist) {
		return 3
	}
	return 1 + g.sample(g.params.ClauseDist[d], len(g.params.ClauseDist[d])-1)
}

// propNum draws how many of a length-k clause's literals are propositional.
func (g *Generator) propNum(d, k int) int {
	if d >= len(g.params.PropDist) || k-1 >= len(g.params.PropDist[d]) {
		return 0
	}
	dist := g.params.PropDist[d][k-1]
	if len(dist) == 0 {
		return 0
	}
	return g.sample(dist, 0)
}

// sample returns an index drawn proportionally to weights, or fallback
// when the weights sum to zero.
func (g *Generator) sample(weights []float64, fallback int) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return fallback
	}
	r := g.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return i
		}
	}
	return len(weights) - 1
}

package kripke

// Multi-modal evaluator over a finite Kripke model.
// Each modality index has its own accessibility relation; you map your
// worlds to StateID and add edges per modality.

import (
	"fmt"
	"sort"

	"github.com/rfielding/kripke-modal/formula"
)

type StateID string

// Model is a finite multi-modal Kripke structure: states, one successor
// relation per modality and a valuation of atoms.
type Model struct {
	States []StateID
	Rel    map[int]map[StateID][]StateID // R_m(s) = Rel[m][s]
	Val    map[string]StateSet           // states where an atom holds
}

// NewModel creates a model over the given states with no edges and an
// empty valuation.
func NewModel(states ...StateID) *Model {
	return &Model{
		States: append([]StateID(nil), states...),
		Rel:    make(map[int]map[StateID][]StateID),
		Val:    make(map[string]StateSet),
	}
}

// AddEdge adds s -> t to the relation of the given modality.
func (m *Model) AddEdge(modality int, s, t StateID) {
	r, ok := m.Rel[modality]
	if !ok {
		r = make(map[StateID][]StateID)
		m.Rel[modality] = r
	}
	for _, x := range r[s] {
		if x == t {
			return
		}
	}
	r[s] = append(r[s], t)
}

// AddEquivalence makes each class a complete cluster of the modality's
// relation, so the relation restricted to the classes is an equivalence.
func (m *Model) AddEquivalence(modality int, classes ...[]StateID) {
	for _, class := range classes {
		for _, s := range class {
			for _, t := range class {
				m.AddEdge(modality, s, t)
			}
		}
	}
}

// Label marks atoms as true at s.
func (m *Model) Label(s StateID, atoms ...string) {
	for _, a := range atoms {
		set, ok := m.Val[a]
		if !ok {
			set = NewStateSet()
			m.Val[a] = set
		}
		set.Add(s)
	}
}

// Succ returns the successors of s under the modality.
func (m *Model) Succ(modality int, s StateID) []StateID {
	return m.Rel[modality][s]
}

// ----- State sets -----

type StateSet map[StateID]struct{}

func NewStateSet(ids ...StateID) StateSet {
	out := make(StateSet, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func (s StateSet) Has(id StateID) bool {
	_, ok := s[id]
	return ok
}

func (s StateSet) Add(id StateID) { s[id] = struct{}{} }
func (s StateSet) Size() int      { return len(s) }

func (s StateSet) Copy() StateSet {
	out := make(StateSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func (s StateSet) Equals(other StateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

func (s StateSet) Intersect(other StateSet) StateSet {
	out := NewStateSet()
	for k := range s {
		if other.Has(k) {
			out.Add(k)
		}
	}
	return out
}

func (s StateSet) Union(other StateSet) StateSet {
	out := s.Copy()
	for k := range other {
		out.Add(k)
	}
	return out
}

func (s StateSet) Difference(other StateSet) StateSet {
	out := NewStateSet()
	for k := range s {
		if !other.Has(k) {
			out.Add(k)
		}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s StateSet) Sorted() []StateID {
	out := make([]StateID, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Universe builds a set containing all states in the model.
func Universe(m *Model) StateSet {
	return NewStateSet(m.States...)
}

// PreE returns states with SOME m-successor in W:
// PreE(W) = { s | ∃ s' . R_m(s,s') ∧ s' ∈ W }
func PreE(W StateSet, m *Model, modality int) StateSet {
	out := NewStateSet()
	for _, s := range m.States {
		for _, s2 := range m.Succ(modality, s) {
			if W.Has(s2) {
				out.Add(s)
				break
			}
		}
	}
	return out
}

// PreA returns states whose ALL m-successors are in W.
// PreA(W) = { s | R_m(s) ⊆ W } (vacuously true if R_m(s) is empty).
func PreA(W StateSet, m *Model, modality int) StateSet {
	out := NewStateSet()
	for _, s := range m.States {
		all := true
		for _, s2 := range m.Succ(modality, s) {
			if !W.Has(s2) {
				all = false
				break
			}
		}
		if all {
			out.Add(s)
		}
	}
	return out
}

// Sat returns the set of states satisfying f.
func (m *Model) Sat(f formula.Formula) StateSet {
	switch f := f.(type) {
	case *formula.True:
		return Universe(m)
	case *formula.False:
		return NewStateSet()
	case *formula.Atom:
		// Atoms true at states outside the model are ignored.
		return m.Val[f.Name()].Intersect(Universe(m))
	case *formula.Not:
		return Universe(m).Difference(m.Sat(f.Subformula()))
	case *formula.And:
		out := Universe(m)
		for _, op := range f.Operands() {
			out = out.Intersect(m.Sat(op))
		}
		return out
	case *formula.Or:
		out := NewStateSet()
		for _, op := range f.Operands() {
			out = out.Union(m.Sat(op))
		}
		return out
	case *formula.Box:
		// □ⁿφ: n rounds of PreA
		W := m.Sat(f.Subformula())
		for i := 0; i < f.Power(); i++ {
			W = PreA(W, m, f.Modality())
		}
		return W
	case *formula.Diamond:
		// ◇ⁿφ: n rounds of PreE
		W := m.Sat(f.Subformula())
		for i := 0; i < f.Power(); i++ {
			W = PreE(W, m, f.Modality())
		}
		return W
	default:
		panic(fmt.Sprintf("kripke: unsupported formula %T", f))
	}
}

// Holds asks whether state s satisfies f.
func (m *Model) Holds(f formula.Formula, s StateID) bool {
	return m.Sat(f).Has(s)
}

// Equivalent reports whether a and b hold at exactly the same states.
func (m *Model) Equivalent(a, b formula.Formula) bool {
	return m.Sat(a).Equals(m.Sat(b))
}

package kripke

import (
	"fmt"
	"math/rand/v2"
)

func stateName(i int) StateID { return StateID(fmt.Sprintf("w%d", i)) }

// labelRandomly makes each atom true at each state with probability 1/2.
func labelRandomly(r *rand.Rand, m *Model, atoms []string) {
	for _, s := range m.States {
		for _, a := range atoms {
			if r.IntN(2) == 0 {
				m.Label(s, a)
			}
		}
	}
}

func newStates(n int) []StateID {
	states := make([]StateID, n)
	for i := range states {
		states[i] = stateName(i)
	}
	return states
}

// RandomModel builds a model whose relations contain each possible edge
// with the given density.
func RandomModel(r *rand.Rand, n int, modalities []int, atoms []string, density float64) *Model {
	m := NewModel(newStates(n)...)
	for _, mod := range modalities {
		for _, s := range m.States {
			for _, t := range m.States {
				if r.Float64() < density {
					m.AddEdge(mod, s, t)
				}
			}
		}
	}
	labelRandomly(r, m, atoms)
	return m
}

// RandomS5Model builds a model in which every modality's relation is an
// equivalence: states are split into random classes per modality.
func RandomS5Model(r *rand.Rand, n int, modalities []int, atoms []string) *Model {
	m := NewModel(newStates(n)...)
	for _, mod := range modalities {
		k := 1 + r.IntN(n)
		classes := make([][]StateID, k)
		for _, s := range m.States {
			c := r.IntN(k)
			classes[c] = append(classes[c], s)
		}
		m.AddEquivalence(mod, classes...)
	}
	labelRandomly(r, m, atoms)
	return m
}

// IsEquivalence reports whether the modality's relation is reflexive,
// symmetric and transitive over the model's states.
func (m *Model) IsEquivalence(modality int) bool {
	has := func(s, t StateID) bool {
		for _, x := range m.Succ(modality, s) {
			if x == t {
				return true
			}
		}
		return false
	}
	for _, s := range m.States {
		if !has(s, s) {
			return false
		}
		for _, t := range m.Succ(modality, s) {
			if !has(t, s) {
				return false
			}
			for _, u := range m.Succ(modality, t) {
				if !has(s, u) {
					return false
				}
			}
		}
	}
	return true
}

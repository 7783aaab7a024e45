package formula

import (
	"sort"
	"strings"
)

// And: (φ₁ ∧ … ∧ φₙ)
type And struct {
	ops  []Formula
	hash uint64
}

// Or: (φ₁ ∨ … ∨ φₙ)
type Or struct {
	ops  []Formula
	hash uint64
}

// NewAnd builds a conjunction. No operands yields ⊤, one yields the operand.
func NewAnd(ops ...Formula) Formula {
	switch len(ops) {
	case 0:
		return trueConst
	case 1:
		return ops[0]
	}
	return newAnd(append([]Formula(nil), ops...))
}

// NewOr builds a disjunction. No operands yields ⊥, one yields the operand.
func NewOr(ops ...Formula) Formula {
	switch len(ops) {
	case 0:
		return falseConst
	case 1:
		return ops[0]
	}
	return newOr(append([]Formula(nil), ops...))
}

func newAnd(ops []Formula) *And { return &And{ops: ops, hash: junctionHash(KindAnd, ops)} }
func newOr(ops []Formula) *Or   { return &Or{ops: ops, hash: junctionHash(KindOr, ops)} }

func junctionHash(k Kind, ops []Formula) uint64 {
	h := hashKind(k)
	for _, op := range ops {
		h += op.Hash()
	}
	return h
}

// build reassembles a junction of kind k from ops, degenerating like NewAnd/NewOr.
func build(k Kind, ops []Formula) Formula {
	if k == KindAnd {
		switch len(ops) {
		case 0:
			return trueConst
		case 1:
			return ops[0]
		}
		return newAnd(ops)
	}
	switch len(ops) {
	case 0:
		return falseConst
	case 1:
		return ops[0]
	}
	return newOr(ops)
}

func operandsOf(f Formula, k Kind) ([]Formula, bool) {
	switch f := f.(type) {
	case *And:
		return f.ops, k == KindAnd
	case *Or:
		return f.ops, k == KindOr
	}
	return nil, false
}

func (a *And) Operands() []Formula { return append([]Formula(nil), a.ops...) }
func (o *Or) Operands() []Formula  { return append([]Formula(nil), o.ops...) }

func (a *And) String() string { return renderJunction(a.ops, " ∧ ") }
func (o *Or) String() string  { return renderJunction(o.ops, " ∨ ") }

func renderJunction(ops []Formula, sep string) string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, op := range ops {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(op.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func (a *And) Kind() Kind { return KindAnd }
func (o *Or) Kind() Kind  { return KindOr }

// mapOps applies fn to every operand and reports whether any operand changed.
func mapOps(ops []Formula, fn func(Formula) Formula) ([]Formula, bool) {
	out := make([]Formula, len(ops))
	changed := false
	for i, op := range ops {
		out[i] = fn(op)
		if out[i] != op {
			changed = true
		}
	}
	return out, changed
}

func (a *And) NegatedNormalForm() Formula {
	ops, changed := mapOps(a.ops, Formula.NegatedNormalForm)
	if !changed {
		return a
	}
	return newAnd(ops)
}

func (o *Or) NegatedNormalForm() Formula {
	ops, changed := mapOps(o.ops, Formula.NegatedNormalForm)
	if !changed {
		return o
	}
	return newOr(ops)
}

func (a *And) TailNormalForm() Formula { return tailNormalForm(a) }
func (o *Or) TailNormalForm() Formula  { return tailNormalForm(o) }

func (a *And) Negate() Formula {
	ops, _ := mapOps(a.ops, Formula.Negate)
	return newOr(ops)
}

func (o *Or) Negate() Formula {
	ops, _ := mapOps(o.ops, Formula.Negate)
	return newAnd(ops)
}

func (a *And) Simplify() Formula { return simplifyJunction(a, KindAnd, a.ops) }
func (o *Or) Simplify() Formula  { return simplifyJunction(o, KindOr, o.ops) }

// simplifyJunction simplifies the operands, then flattens nested junctions of
// the same kind, drops units, absorbs zeros, removes duplicates and collapses
// complementary literals.
func simplifyJunction(self Formula, k Kind, ops []Formula) Formula {
	var unit, zero Kind = KindTrue, KindFalse
	if k == KindOr {
		unit, zero = KindFalse, KindTrue
	}
	zeroNode := Formula(falseConst)
	if k == KindOr {
		zeroNode = trueConst
	}

	out := make([]Formula, 0, len(ops))
	changed := false
	add := func(f Formula) bool {
		switch f.Kind() {
		case unit:
			changed = true
			return true
		case zero:
			return false
		}
		for _, prev := range out {
			if Equal(prev, f) {
				changed = true
				return true
			}
			if complementary(prev, f) {
				return false
			}
		}
		out = append(out, f)
		return true
	}

	for _, op := range ops {
		s := op.Simplify()
		if s != op {
			changed = true
		}
		if inner, ok := operandsOf(s, k); ok {
			changed = true
			for _, f := range inner {
				if !add(f) {
					return zeroNode
				}
			}
			continue
		}
		if !add(s) {
			return zeroNode
		}
	}
	if !changed {
		return self
	}
	return build(k, out)
}

func complementary(a, b Formula) bool {
	if n, ok := a.(*Not); ok && Equal(n.sub, b) {
		return true
	}
	if n, ok := b.(*Not); ok && Equal(n.sub, a) {
		return true
	}
	return false
}

func (a *And) ModalFlatten() Formula {
	ops, changed := mapOps(a.ops, Formula.ModalFlatten)
	if !changed {
		return a
	}
	return newAnd(ops)
}

func (o *Or) ModalFlatten() Formula {
	ops, changed := mapOps(o.ops, Formula.ModalFlatten)
	if !changed {
		return o
	}
	return newOr(ops)
}

func (a *And) AxiomSimplify(axiom Axiom, depth int) Formula {
	ops, changed := mapOps(a.ops, func(f Formula) Formula { return f.AxiomSimplify(axiom, depth) })
	if !changed {
		return a
	}
	return newAnd(ops)
}

func (o *Or) AxiomSimplify(axiom Axiom, depth int) Formula {
	ops, changed := mapOps(o.ops, func(f Formula) Formula { return f.AxiomSimplify(axiom, depth) })
	if !changed {
		return o
	}
	return newOr(ops)
}

func (a *And) Clone() Formula {
	ops, _ := mapOps(a.ops, Formula.Clone)
	return newAnd(ops)
}

func (o *Or) Clone() Formula {
	ops, _ := mapOps(o.ops, Formula.Clone)
	return newOr(ops)
}

func (a *And) Equal(other Formula) bool {
	o, ok := other.(*And)
	return ok && o.hash == a.hash && equalOps(a.ops, o.ops)
}

func (o *Or) Equal(other Formula) bool {
	p, ok := other.(*Or)
	return ok && p.hash == o.hash && equalOps(o.ops, p.ops)
}

func equalOps(a, b []Formula) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (a *And) Hash() uint64 { return a.hash }
func (o *Or) Hash() uint64  { return o.hash }

func (*And) sealed() {}
func (*Or) sealed()  {}

// tailNormalForm puts a non-modal formula into negation normal form, then
// flattens each junction chain, sorts its operands canonically and drops
// duplicates. Modal operands are kept as tails and not descended into.
func tailNormalForm(f Formula) Formula {
	return canonical(f.NegatedNormalForm())
}

func canonical(f Formula) Formula {
	k := f.Kind()
	if k != KindAnd && k != KindOr {
		return f
	}
	var flat []Formula
	var collect func(Formula)
	collect = func(g Formula) {
		if inner, ok := operandsOf(g, k); ok {
			for _, op := range inner {
				collect(op)
			}
			return
		}
		if g.Kind() == KindBox || g.Kind() == KindDiamond {
			flat = append(flat, g)
			return
		}
		flat = append(flat, canonical(g))
	}
	collect(f)

	sort.SliceStable(flat, func(i, j int) bool {
		if flat[i].Kind() != flat[j].Kind() {
			return flat[i].Kind() < flat[j].Kind()
		}
		return flat[i].String() < flat[j].String()
	})
	out := flat[:0]
	for _, op := range flat {
		if len(out) > 0 && Equal(out[len(out)-1], op) {
			continue
		}
		out = append(out, op)
	}
	return build(k, out)
}

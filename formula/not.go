package formula

// Not: ¬φ
type Not struct {
	sub  Formula
	hash uint64
}

func NewNot(sub Formula) *Not {
	return &Not{sub: sub, hash: hashKind(KindNot) + sub.Hash()}
}

func (n *Not) Subformula() Formula { return n.sub }

func (n *Not) String() string {
	return "¬" + n.sub.String()
}

func (n *Not) Kind() Kind { return KindNot }

func (n *Not) NegatedNormalForm() Formula {
	if _, ok := n.sub.(*Atom); ok {
		return n
	}
	return n.sub.Negate().NegatedNormalForm()
}

func (n *Not) TailNormalForm() Formula { return tailNormalForm(n) }

func (n *Not) Negate() Formula { return n.sub }

func (n *Not) Simplify() Formula {
	s := n.sub.Simplify()
	switch s := s.(type) {
	case *True:
		return falseConst
	case *False:
		return trueConst
	case *Not:
		return s.sub
	}
	if s == n.sub {
		return n
	}
	return NewNot(s)
}

func (n *Not) ModalFlatten() Formula {
	s := n.sub.ModalFlatten()
	if s == n.sub {
		return n
	}
	return NewNot(s)
}

func (n *Not) AxiomSimplify(axiom Axiom, depth int) Formula {
	s := n.sub.AxiomSimplify(axiom, depth)
	if s == n.sub {
		return n
	}
	return NewNot(s)
}

func (n *Not) Clone() Formula { return NewNot(n.sub.Clone()) }

func (n *Not) Equal(other Formula) bool {
	o, ok := other.(*Not)
	return ok && o.hash == n.hash && n.sub.Equal(o.sub)
}

func (n *Not) Hash() uint64 { return n.hash }

func (*Not) sealed() {}

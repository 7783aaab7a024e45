package formula

// Box: □ⁿₘφ, power stacked applications of the necessity operator for
// modality m.
type Box struct {
	modality int
	power    int
	sub      Formula
	s5       bool
	hash     uint64
}

// NewBox builds □ⁿₘφ. A nested Box of the same modality is merged into the
// new node and power 0 returns sub itself. Negative powers panic with
// ErrNegativePower.
func NewBox(modality, power int, sub Formula, opts ...ModalOption) Formula {
	return newBox(modality, power, sub, applyModalOptions(opts).s5)
}

// NewBoxChain builds [m1][m2]...[mk]sub, leftmost modality outermost.
func NewBoxChain(modalities []int, sub Formula, opts ...ModalOption) Formula {
	s5 := applyModalOptions(opts).s5
	f := sub
	for i := len(modalities) - 1; i >= 0; i-- {
		f = newBox(modalities[i], 1, f, s5)
	}
	return f
}

func newBox(modality, power int, sub Formula, s5 bool) Formula {
	checkModalArgs("NewBox", KindBox, power, sub)
	if power == 0 {
		return sub
	}
	if inner, ok := sub.(*Box); ok && inner.modality == modality {
		power += inner.power
		sub = inner.sub
	}
	return &Box{
		modality: modality,
		power:    power,
		sub:      sub,
		s5:       s5,
		hash:     modalHash(KindBox, modality, power, s5, sub),
	}
}

func (b *Box) Modality() int       { return b.modality }
func (b *Box) Power() int          { return b.power }
func (b *Box) Subformula() Formula { return b.sub }
func (b *Box) S5() bool            { return b.s5 }

func (b *Box) String() string {
	return renderModal("[", "]", b.modality, b.power, b.sub)
}

func (b *Box) Kind() Kind { return KindBox }

// NegatedNormalForm leaves the operator in place; polarity only flips at Not.
func (b *Box) NegatedNormalForm() Formula {
	s := b.sub.NegatedNormalForm()
	if s == b.sub {
		return b
	}
	return newBox(b.modality, b.power, s, b.s5)
}

func (b *Box) TailNormalForm() Formula {
	violate("TailNormalForm", KindBox, ErrTailNormalForm, b.String())
	return nil
}

// Negate: ¬□φ ≡ ◇¬φ
func (b *Box) Negate() Formula {
	return newDiamond(b.modality, b.power, b.sub.Negate(), b.s5)
}

// Simplify rewrites bottom-up to a fixpoint:
//
//	□ⁿ◇ᵏφ → ◇ⁿ⁺ᵏφ
//	□ⁿ□ᵏφ → □ⁿ⁺ᵏφ
func (b *Box) Simplify() Formula {
	s := b.sub.Simplify()
	switch inner := s.(type) {
	case *Diamond:
		return newDiamond(inner.modality, b.power+inner.power, inner.sub, inner.s5).Simplify()
	case *Box:
		if inner.modality == b.modality {
			return newBox(b.modality, b.power+inner.power, inner.sub, b.s5).Simplify()
		}
	}
	if s == b.sub {
		return b
	}
	return newBox(b.modality, b.power, s, b.s5)
}

func (b *Box) ModalFlatten() Formula {
	s := b.sub.ModalFlatten()
	if s == b.sub {
		return b
	}
	// newBox absorbs a same-modality Box surfaced by the flattened child.
	return newBox(b.modality, b.power, s, b.s5)
}

func (b *Box) AxiomSimplify(axiom Axiom, depth int) Formula {
	s := b.sub.AxiomSimplify(axiom, depth+b.power)
	power := b.power
	if inner, ok := s.(*Box); ok && inner.modality == b.modality {
		power += inner.power
		s = inner.sub
	}
	power = clampPower(depth, power)
	if power == b.power && s == b.sub {
		return b
	}
	return newBox(b.modality, power, s, b.s5)
}

// Reduced returns the formula with one application of the operator
// consumed. The receiver is left untouched.
func (b *Box) Reduced() Formula {
	return newBox(b.modality, b.power-1, b.sub, b.s5)
}

func (b *Box) Clone() Formula {
	return newBox(b.modality, b.power, b.sub.Clone(), b.s5)
}

// Equal compares modality, power, the S5 flag and the subformula.
func (b *Box) Equal(other Formula) bool {
	o, ok := other.(*Box)
	if !ok {
		return false
	}
	return o.hash == b.hash &&
		o.modality == b.modality &&
		o.power == b.power &&
		o.s5 == b.s5 &&
		b.sub.Equal(o.sub)
}

func (b *Box) Hash() uint64 { return b.hash }

func (*Box) sealed() {}

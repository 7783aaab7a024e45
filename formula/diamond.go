package formula

// Diamond: ◇ⁿₘφ, power stacked applications of the possibility operator
// for modality m. The S5 flag is part of the node's identity and selects
// the S5 simplification strategy.
type Diamond struct {
	modality int
	power    int
	sub      Formula
	s5       bool
	hash     uint64
}

// NewDiamond builds ◇ⁿₘφ, merging a nested Diamond of the same modality.
// Power 0 returns sub itself.
func NewDiamond(modality, power int, sub Formula, opts ...ModalOption) Formula {
	return newDiamond(modality, power, sub, applyModalOptions(opts).s5)
}

// NewDiamondChain builds <m1><m2>...<mk>sub, leftmost modality outermost.
func NewDiamondChain(modalities []int, sub Formula, opts ...ModalOption) Formula {
	s5 := applyModalOptions(opts).s5
	f := sub
	for i := len(modalities) - 1; i >= 0; i-- {
		f = newDiamond(modalities[i], 1, f, s5)
	}
	return f
}

func newDiamond(modality, power int, sub Formula, s5 bool) Formula {
	checkModalArgs("NewDiamond", KindDiamond, power, sub)
	if power == 0 {
		return sub
	}
	if inner, ok := sub.(*Diamond); ok && inner.modality == modality {
		power += inner.power
		sub = inner.sub
	}
	return &Diamond{
		modality: modality,
		power:    power,
		sub:      sub,
		s5:       s5,
		hash:     modalHash(KindDiamond, modality, power, s5, sub),
	}
}

func (d *Diamond) Modality() int       { return d.modality }
func (d *Diamond) Power() int          { return d.power }
func (d *Diamond) Subformula() Formula { return d.sub }
func (d *Diamond) S5() bool            { return d.s5 }

func (d *Diamond) String() string {
	return renderModal("<", ">", d.modality, d.power, d.sub)
}

func (d *Diamond) Kind() Kind { return KindDiamond }

func (d *Diamond) NegatedNormalForm() Formula {
	s := d.sub.NegatedNormalForm()
	if s == d.sub {
		return d
	}
	return newDiamond(d.modality, d.power, s, d.s5)
}

func (d *Diamond) TailNormalForm() Formula {
	violate("TailNormalForm", KindDiamond, ErrTailNormalForm, d.String())
	return nil
}

// Negate: ¬◇φ ≡ □¬φ
func (d *Diamond) Negate() Formula {
	return newBox(d.modality, d.power, d.sub.Negate(), d.s5)
}

// Simplify under K:
//
//	◇ⁿ⊥ → ⊥
//	◇ⁿ◇ᵏφ → ◇ⁿ⁺ᵏφ
//
// S5 diamonds use simplifyS5 instead.
func (d *Diamond) Simplify() Formula {
	if d.s5 {
		return d.simplifyS5()
	}
	s := d.sub.Simplify()
	switch inner := s.(type) {
	case *False:
		return falseConst
	case *Diamond:
		if inner.modality == d.modality {
			// the inner diamond may be S5 and still carry ◇⊥
			return newDiamond(d.modality, d.power+inner.power, inner.sub, d.s5).Simplify()
		}
	}
	if s == d.sub {
		return d
	}
	return newDiamond(d.modality, d.power, s, d.s5)
}

// simplifyS5 rewrites to a fixpoint:
//
//	◇ⁿ□ᵏφ → □ⁿ⁺ᵏφ
//	◇ⁿ◇ᵏφ → ◇ⁿ⁺ᵏφ
func (d *Diamond) simplifyS5() Formula {
	s := d.sub.Simplify()
	switch inner := s.(type) {
	case *Box:
		return newBox(inner.modality, d.power+inner.power, inner.sub, d.s5).Simplify()
	case *Diamond:
		if inner.modality == d.modality {
			return newDiamond(d.modality, d.power+inner.power, inner.sub, d.s5).Simplify()
		}
	}
	if s == d.sub {
		return d
	}
	return newDiamond(d.modality, d.power, s, d.s5)
}

func (d *Diamond) ModalFlatten() Formula {
	s := d.sub.ModalFlatten()
	if s == d.sub {
		return d
	}
	return newDiamond(d.modality, d.power, s, d.s5)
}

// AxiomSimplify under AxiomB elides ◇□ψ below a modal context, continuing
// with ψ at the same depth. Everything else recurses and clamps the power
// like Box.AxiomSimplify.
func (d *Diamond) AxiomSimplify(axiom Axiom, depth int) Formula {
	if axiom == AxiomB && depth >= 1 {
		if box, ok := d.sub.(*Box); ok {
			return box.sub.AxiomSimplify(axiom, depth)
		}
	}
	s := d.sub.AxiomSimplify(axiom, depth+d.power)
	power := d.power
	if inner, ok := s.(*Diamond); ok && inner.modality == d.modality {
		power += inner.power
		s = inner.sub
	}
	power = clampPower(depth, power)
	if power == d.power && s == d.sub {
		return d
	}
	return newDiamond(d.modality, power, s, d.s5)
}

// Reduced returns the formula with one application of the operator
// consumed. The receiver is left untouched.
func (d *Diamond) Reduced() Formula {
	return newDiamond(d.modality, d.power-1, d.sub, d.s5)
}

func (d *Diamond) Clone() Formula {
	return newDiamond(d.modality, d.power, d.sub.Clone(), d.s5)
}

func (d *Diamond) Equal(other Formula) bool {
	o, ok := other.(*Diamond)
	if !ok {
		return false
	}
	return o.hash == d.hash &&
		o.modality == d.modality &&
		o.power == d.power &&
		o.s5 == d.s5 &&
		d.sub.Equal(o.sub)
}

func (d *Diamond) Hash() uint64 { return d.hash }

func (*Diamond) sealed() {}

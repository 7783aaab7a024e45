package formula

// Atom: an atomic proposition.
type Atom struct {
	name string
	hash uint64
}

func NewAtom(name string) *Atom {
	return &Atom{name: name, hash: hashKind(KindAtom) + hashName(name)}
}

func (a *Atom) Name() string { return a.name }

func (a *Atom) String() string { return a.name }
func (a *Atom) Kind() Kind     { return KindAtom }

func (a *Atom) NegatedNormalForm() Formula           { return a }
func (a *Atom) TailNormalForm() Formula              { return a }
func (a *Atom) Negate() Formula                      { return NewNot(a) }
func (a *Atom) Simplify() Formula                    { return a }
func (a *Atom) ModalFlatten() Formula                { return a }
func (a *Atom) AxiomSimplify(_ Axiom, _ int) Formula { return a }

func (a *Atom) Clone() Formula { return NewAtom(a.name) }

func (a *Atom) Equal(other Formula) bool {
	o, ok := other.(*Atom)
	return ok && o.name == a.name
}

func (a *Atom) Hash() uint64 { return a.hash }

func (*Atom) sealed() {}

// True: ⊤
type True struct{}

// False: ⊥
type False struct{}

var (
	trueConst  = &True{}
	falseConst = &False{}
)

// TrueConstant returns the shared ⊤ node.
func TrueConstant() *True { return trueConst }

// FalseConstant returns the shared ⊥ node.
func FalseConstant() *False { return falseConst }

func (t *True) String() string                       { return "⊤" }
func (t *True) Kind() Kind                           { return KindTrue }
func (t *True) NegatedNormalForm() Formula           { return t }
func (t *True) TailNormalForm() Formula              { return t }
func (t *True) Negate() Formula                      { return falseConst }
func (t *True) Simplify() Formula                    { return t }
func (t *True) ModalFlatten() Formula                { return t }
func (t *True) AxiomSimplify(_ Axiom, _ int) Formula { return t }
func (t *True) Clone() Formula                       { return t }
func (t *True) Hash() uint64                         { return hashKind(KindTrue) }

func (t *True) Equal(other Formula) bool {
	_, ok := other.(*True)
	return ok
}

func (*True) sealed() {}

func (f *False) String() string                       { return "⊥" }
func (f *False) Kind() Kind                           { return KindFalse }
func (f *False) NegatedNormalForm() Formula           { return f }
func (f *False) TailNormalForm() Formula              { return f }
func (f *False) Negate() Formula                      { return trueConst }
func (f *False) Simplify() Formula                    { return f }
func (f *False) ModalFlatten() Formula                { return f }
func (f *False) AxiomSimplify(_ Axiom, _ int) Formula { return f }
func (f *False) Clone() Formula                       { return f }
func (f *False) Hash() uint64                         { return hashKind(KindFalse) }

func (f *False) Equal(other Formula) bool {
	_, ok := other.(*False)
	return ok
}

func (*False) sealed() {}

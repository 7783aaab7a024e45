package formula

// Multi-modal formula terms and the rewriting passes used by the prover.
// Nodes are immutable once built: every pass either returns the receiver
// unchanged or a freshly constructed node, so subtrees can be shared freely
// and the cached hash never goes stale.

import "fmt"

// Kind discriminates the closed set of formula variants.
type Kind int

const (
	KindAtom Kind = iota
	KindTrue
	KindFalse
	KindNot
	KindAnd
	KindOr
	KindBox
	KindDiamond
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindNot:
		return "not"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindBox:
		return "box"
	case KindDiamond:
		return "diamond"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Axiom names the modal axiom schema assumed by AxiomSimplify.
type Axiom int

const (
	AxiomK Axiom = iota // no frame condition
	AxiomT              // □φ → φ
	AxiomB              // ◇□φ → φ
	Axiom4              // □φ → □□φ
	Axiom5              // ◇φ → □◇φ
)

func (a Axiom) String() string {
	switch a {
	case AxiomK:
		return "K"
	case AxiomT:
		return "T"
	case AxiomB:
		return "B"
	case Axiom4:
		return "4"
	case Axiom5:
		return "5"
	default:
		return fmt.Sprintf("axiom(%d)", int(a))
	}
}

// ParseAxiom maps a schema name ("K", "T", "B", "4", "5") to its Axiom.
func ParseAxiom(s string) (Axiom, error) {
	switch s {
	case "K", "k":
		return AxiomK, nil
	case "T", "t":
		return AxiomT, nil
	case "B", "b":
		return AxiomB, nil
	case "4":
		return Axiom4, nil
	case "5":
		return Axiom5, nil
	}
	return AxiomK, fmt.Errorf("unknown axiom %q", s)
}

// Formula is the capability every node of a formula tree provides.
// The set of implementations is closed: Atom, True, False, Not, And, Or,
// Box and Diamond.
type Formula interface {
	// String renders the formula, e.g. "[1][1]p" or "<2>(p ∧ ¬q)".
	String() string
	Kind() Kind

	// NegatedNormalForm pushes negation down to the atoms.
	NegatedNormalForm() Formula
	// TailNormalForm canonicalizes a formula that is not modality-headed.
	// It panics with ErrTailNormalForm on Box and Diamond.
	TailNormalForm() Formula
	// Negate returns the De Morgan dual.
	Negate() Formula
	Simplify() Formula
	// ModalFlatten merges directly nested same-kind, same-modality
	// operators in one bottom-up pass.
	ModalFlatten() Formula
	// AxiomSimplify normalizes modal powers for the given axiom, where
	// depth counts the modal operators above the receiver.
	AxiomSimplify(axiom Axiom, depth int) Formula

	Clone() Formula
	Equal(other Formula) bool
	// Hash is a structural hash: equal formulas hash equally, the
	// converse does not hold.
	Hash() uint64

	sealed()
}

// Equal reports whether a and b are structurally equal. Nil only equals nil.
func Equal(a, b Formula) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Hash() != b.Hash() {
		return false
	}
	return a.Equal(b)
}

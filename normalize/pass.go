// Package normalize runs sequences of formula rewrite passes to a fixpoint,
// recording what each pass did.
package normalize

import (
	"fmt"
	"strings"

	"github.com/rfielding/kripke-modal/formula"
)

// Pass names a single rewrite over a whole formula.
type Pass string

const (
	PassNNF      Pass = "nnf"
	PassSimplify Pass = "simplify"
	PassFlatten  Pass = "flatten"
	PassAxiom    Pass = "axiom"
)

// DefaultPasses is the order used when none is configured.
var DefaultPasses = []Pass{PassNNF, PassSimplify, PassFlatten, PassAxiom}

func ParsePass(s string) (Pass, error) {
	switch p := Pass(strings.ToLower(strings.TrimSpace(s))); p {
	case PassNNF, PassSimplify, PassFlatten, PassAxiom:
		return p, nil
	}
	return "", fmt.Errorf("unknown pass %q", s)
}

// ParsePasses parses a list of pass names, rejecting the first unknown one.
func ParsePasses(names []string) ([]Pass, error) {
	passes := make([]Pass, 0, len(names))
	for _, name := range names {
		p, err := ParsePass(name)
		if err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	return passes, nil
}

// apply runs one pass. The axiom pass starts at modal depth 0.
func (p Pass) apply(f formula.Formula, axiom formula.Axiom) formula.Formula {
	switch p {
	case PassNNF:
		return f.NegatedNormalForm()
	case PassSimplify:
		return f.Simplify()
	case PassFlatten:
		return f.ModalFlatten()
	case PassAxiom:
		return f.AxiomSimplify(axiom, 0)
	default:
		panic(fmt.Sprintf("normalize: unknown pass %q", string(p)))
	}
}

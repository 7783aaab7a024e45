package kripke

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteMermaidStateDiagram writes a Mermaid stateDiagram-v2 representation
// of the model to w. "initial" is the starting state; edges are labeled
// with their modality and states with the atoms true there.
func WriteMermaidStateDiagram(m *Model, initial StateID, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	// Initial arrow
	fmt.Fprintf(&sb, "  [*] --> %s\n\n", initial)

	modalities := make([]int, 0, len(m.Rel))
	for mod := range m.Rel {
		modalities = append(modalities, mod)
	}
	sort.Ints(modalities)

	for _, from := range m.States {
		for _, mod := range modalities {
			for _, to := range m.Succ(mod, from) {
				fmt.Fprintf(&sb, "  %s --> %s: %d\n", from, to, mod)
			}
		}
	}

	atoms := make([]string, 0, len(m.Val))
	for a := range m.Val {
		atoms = append(atoms, a)
	}
	sort.Strings(atoms)

	for _, s := range m.States {
		var holds []string
		for _, a := range atoms {
			if m.Val[a].Has(s) {
				holds = append(holds, a)
			}
		}
		if len(holds) > 0 {
			fmt.Fprintf(&sb, "  %s: %s\n", s, strings.Join(holds, ", "))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

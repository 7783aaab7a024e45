// Package render draws formulas as Graphviz DOT trees.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rfielding/kripke-modal/formula"
)

// Graphviz returns the DOT representation of f's syntax tree. Modal nodes
// show their full operator tower, so [1][1]p is a single node over p.
func Graphviz(f formula.Formula) string {
	var sb strings.Builder

	sb.WriteString("digraph Formula {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, fontname=\"monospace\"];\n")
	sb.WriteString("\n")

	g := &dotWriter{sb: &sb}
	g.node(f)

	sb.WriteString("}\n")
	return sb.String()
}

// WriteGraphviz writes the DOT representation of f to w.
func WriteGraphviz(w io.Writer, f formula.Formula) error {
	if _, err := io.WriteString(w, Graphviz(f)); err != nil {
		return fmt.Errorf("writing graphviz: %w", err)
	}
	return nil
}

type dotWriter struct {
	sb   *strings.Builder
	next int
}

// node emits f and its children, returning f's node id.
func (g *dotWriter) node(f formula.Formula) string {
	id := fmt.Sprintf("n%d", g.next)
	g.next++

	label, shape, children := describe(f)
	g.sb.WriteString(fmt.Sprintf("  %s [label=%q, shape=%s];\n", id, label, shape))
	for _, child := range children {
		childID := g.node(child)
		g.sb.WriteString(fmt.Sprintf("  %s -> %s;\n", id, childID))
	}
	return id
}

func describe(f formula.Formula) (label, shape string, children []formula.Formula) {
	switch f := f.(type) {
	case *formula.Atom:
		return f.Name(), "ellipse", nil
	case *formula.True, *formula.False:
		return f.String(), "plaintext", nil
	case *formula.Not:
		return "¬", "circle", []formula.Formula{f.Subformula()}
	case *formula.And:
		return "∧", "circle", f.Operands()
	case *formula.Or:
		return "∨", "circle", f.Operands()
	case *formula.Box:
		return modalLabel("[", "]", f.Modality(), f.Power(), f.S5()), "box", []formula.Formula{f.Subformula()}
	case *formula.Diamond:
		return modalLabel("<", ">", f.Modality(), f.Power(), f.S5()), "diamond", []formula.Formula{f.Subformula()}
	default:
		return f.String(), "box", nil
	}
}

func modalLabel(left, right string, modality, power int, s5 bool) string {
	label := strings.Repeat(fmt.Sprintf("%s%d%s", left, modality, right), power)
	if s5 {
		label += " S5"
	}
	return label
}

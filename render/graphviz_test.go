package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/kripke-modal/formula"
)

func TestGraphvizGeneration(t *testing.T) {
	t.Parallel()
	p, q := formula.NewAtom("p"), formula.NewAtom("q")
	dot := Graphviz(formula.NewAnd(formula.NewBox(1, 2, p), formula.NewNot(q)))

	if !strings.HasPrefix(dot, "digraph Formula {") {
		t.Error("Expected digraph declaration")
	}
	if !strings.Contains(dot, `n0 [label="∧", shape=circle];`) {
		t.Error("Expected conjunction root")
	}
	if !strings.Contains(dot, `[label="[1][1]", shape=box];`) {
		t.Error("Expected box tower node")
	}
	if !strings.Contains(dot, `[label="p", shape=ellipse];`) {
		t.Error("Expected atom p")
	}

	// ∧ → [1][1] → p, ∧ → ¬ → q
	for _, edge := range []string{"n0 -> n1;", "n1 -> n2;", "n0 -> n3;", "n3 -> n4;"} {
		if !strings.Contains(dot, edge) {
			t.Errorf("Expected edge %s in\n%s", edge, dot)
		}
	}
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestGraphvizLabels(t *testing.T) {
	t.Parallel()
	p := formula.NewAtom("p")

	tests := []struct {
		name string
		in   formula.Formula
		want string
	}{
		{"diamond", formula.NewDiamond(3, 1, p), `[label="<3>", shape=diamond];`},
		{"s5 box", formula.NewBox(2, 1, p, formula.WithS5(true)), `[label="[2] S5", shape=box];`},
		{"disjunction", formula.NewOr(p, formula.NewAtom("q")), `[label="∨", shape=circle];`},
		{"constant", formula.FalseConstant(), `[label="⊥", shape=plaintext];`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Graphviz(tt.in), tt.want)
		})
	}
}

func TestGraphvizCountsNodes(t *testing.T) {
	t.Parallel()
	f := formula.NewOr(formula.NewAtom("a"), formula.NewAtom("b"), formula.NewDiamond(1, 1, formula.NewAtom("a")))
	dot := Graphviz(f)
	assert.Equal(t, formula.Measure(f).Size, strings.Count(dot, "[label="))
	assert.Equal(t, formula.Measure(f).Size-1, strings.Count(dot, " -> "))
}

func TestWriteGraphviz(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := formula.NewNot(formula.NewAtom("p"))
	require.NoError(t, WriteGraphviz(&buf, f))
	assert.Equal(t, Graphviz(f), buf.String())
}

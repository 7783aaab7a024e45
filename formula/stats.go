package formula

// Stats summarizes the shape of a formula.
type Stats struct {
	ModalDepth int // deepest stack of modal applications, counting powers
	Boxes      int // box applications, counting powers
	Diamonds   int // diamond applications, counting powers
	Atoms      int // atom occurrences
	Clauses    int // operands of the top-level conjunction
	Size       int // nodes in the tree
}

// Measure walks f once and collects its Stats.
func Measure(f Formula) Stats {
	var st Stats
	st.ModalDepth = measure(f, &st)
	st.Clauses = 1
	if a, ok := f.(*And); ok {
		st.Clauses = len(a.ops)
	}
	return st
}

func measure(f Formula, st *Stats) int {
	st.Size++
	switch f := f.(type) {
	case *Atom:
		st.Atoms++
		return 0
	case *True, *False:
		return 0
	case *Not:
		return measure(f.sub, st)
	case *And:
		return measureOps(f.ops, st)
	case *Or:
		return measureOps(f.ops, st)
	case *Box:
		st.Boxes += f.power
		return f.power + measure(f.sub, st)
	case *Diamond:
		st.Diamonds += f.power
		return f.power + measure(f.sub, st)
	default:
		panic("formula: unknown variant")
	}
}

func measureOps(ops []Formula, st *Stats) int {
	depth := 0
	for _, op := range ops {
		depth = max(depth, measure(op, st))
	}
	return depth
}

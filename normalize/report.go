package normalize

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PassStats aggregates every application of one pass.
type PassStats struct {
	Pass       Pass
	Runs       int
	Changed    int
	SizeBefore int
	SizeAfter  int
	Total      time.Duration
}

// Report accumulates Results for presentation.
type Report struct {
	Formulas  int
	Converged int
	Shared    int
	SizeIn    int
	SizeOut   int

	passes map[Pass]*PassStats
}

func NewReport() *Report {
	return &Report{passes: make(map[Pass]*PassStats)}
}

func (r *Report) Add(results ...Result) {
	for _, res := range results {
		r.Formulas++
		if res.Converged {
			r.Converged++
		}
		if res.Shared {
			r.Shared++
		}
		if len(res.Passes) > 0 {
			r.SizeIn += res.Passes[0].Before.Size
			r.SizeOut += res.Passes[len(res.Passes)-1].After.Size
		}
		for _, pr := range res.Passes {
			ps, ok := r.passes[pr.Pass]
			if !ok {
				ps = &PassStats{Pass: pr.Pass}
				r.passes[pr.Pass] = ps
			}
			ps.Runs++
			if pr.Changed {
				ps.Changed++
			}
			ps.SizeBefore += pr.Before.Size
			ps.SizeAfter += pr.After.Size
			ps.Total += pr.Duration
		}
	}
}

// Pass returns the aggregate for p, zero if it never ran.
func (r *Report) Pass(p Pass) PassStats {
	if ps, ok := r.passes[p]; ok {
		return *ps
	}
	return PassStats{Pass: p}
}

func (r *Report) sortedPasses() []Pass {
	names := make([]Pass, 0, len(r.passes))
	for name := range r.passes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// MarkdownTable renders one row per pass.
func (r *Report) MarkdownTable() string {
	var sb strings.Builder
	sb.WriteString("| Pass | Runs | Changed | Size Before | Size After | Time |\n")
	sb.WriteString("|------|------|---------|-------------|------------|------|\n")

	for _, name := range r.sortedPasses() {
		ps := r.passes[name]
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | %v |\n",
			ps.Pass, ps.Runs, ps.Changed, ps.SizeBefore, ps.SizeAfter, ps.Total))
	}

	sb.WriteString(fmt.Sprintf("\n%d formulas, %d converged, %d shared, size %d -> %d\n",
		r.Formulas, r.Converged, r.Shared, r.SizeIn, r.SizeOut))
	return sb.String()
}

// MermaidChart renders a bar chart of how often each pass changed a formula.
func (r *Report) MermaidChart() string {
	var sb strings.Builder

	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Rewrites per pass\"\n")

	names := r.sortedPasses()
	sb.WriteString("    x-axis [")
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", string(name)))
	}
	sb.WriteString("]\n")

	sb.WriteString("    bar [")
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%d", r.passes[name].Changed))
	}
	sb.WriteString("]\n")

	return sb.String()
}

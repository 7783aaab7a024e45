package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-modal/normalize"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var (
		chart   bool
		metrics bool
	)
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Generate formulas and run the normalization passes on them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			p, err := a.pipeline(reg)
			if err != nil {
				return err
			}
			fs, err := a.formulas()
			if err != nil {
				return err
			}
			results, err := p.RunBatch(cmd.Context(), fs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				fmt.Fprintf(out, "%s\n  => %s\n", res.Input, res.Output)
			}

			report := normalize.NewReport()
			report.Add(results...)
			fmt.Fprintln(out)
			fmt.Fprint(out, report.MarkdownTable())
			if chart {
				fmt.Fprintln(out)
				fmt.Fprint(out, report.MermaidChart())
			}
			if metrics {
				fmt.Fprintln(out)
				return writeMetrics(out, reg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&chart, "chart", false, "Append a Mermaid chart of rewrites per pass")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Append the collected Prometheus metrics")
	return cmd
}

func (a *app) pipeline(reg prometheus.Registerer) (*normalize.Pipeline, error) {
	opts, err := a.cfg.PipelineOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = a.logger
	opts.Registry = reg
	return normalize.New(opts)
}

// writeMetrics prints one line per counter and histogram series.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + labelString(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}

func labelString(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	s := "{"
	for i, l := range labels {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	return s + "}"
}

package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-modal/formula"
	"github.com/rfielding/kripke-modal/kripke"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		models int
		states int
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that normalization preserves meaning on random S5 models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if models < 1 || states < 1 {
				return fmt.Errorf("models and states must be positive")
			}
			p, err := a.pipeline(nil)
			if err != nil {
				return err
			}
			fs, err := a.formulas()
			if err != nil {
				return err
			}
			if a.cfg.Generator.Modalities > 1 {
				a.logger.Warn("rewrites across modalities are only S5-valid for a single modality",
					"modalities", a.cfg.Generator.Modalities)
			}

			mods := make([]int, a.cfg.Generator.Modalities)
			for i := range mods {
				mods[i] = i + 1
			}
			atoms := make([]string, a.cfg.Generator.Variables)
			for i := range atoms {
				atoms[i] = fmt.Sprintf("A%d", i+1)
			}
			r := rand.New(rand.NewPCG(a.cfg.Generator.Seed, uint64(models)))

			out := cmd.OutOrStdout()
			failures := 0
			for _, f := range fs {
				norm := p.Normalize(f).Output
				if m, s, ok := counterexample(r, f, norm, models, states, mods, atoms); !ok {
					failures++
					fmt.Fprintf(out, "MISMATCH %s\n  => %s\n  at %s in\n", f, norm, s)
					if err := kripke.WriteMermaidStateDiagram(m, s, out); err != nil {
						return err
					}
				}
			}
			fmt.Fprintf(out, "%d/%d formulas preserved on %d models\n", len(fs)-failures, len(fs), models)
			if failures > 0 {
				return fmt.Errorf("%d formulas changed meaning", failures)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&models, "models", 20, "Random S5 models per formula")
	cmd.Flags().IntVar(&states, "states", 5, "States per model")
	return cmd
}

// counterexample searches random S5 models for a state where f and g
// disagree. ok is true when none was found.
func counterexample(r *rand.Rand, f, g formula.Formula, models, states int, mods []int, atoms []string) (*kripke.Model, kripke.StateID, bool) {
	for i := 0; i < models; i++ {
		m := kripke.RandomS5Model(r, states, mods, atoms)
		diff := m.Sat(f).Difference(m.Sat(g)).Union(m.Sat(g).Difference(m.Sat(f)))
		if diff.Size() > 0 {
			return m, diff.Sorted()[0], false
		}
	}
	return nil, "", true
}

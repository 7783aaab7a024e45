package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-modal/formula"
)

func newGenCmd(a *app) *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Print random modal 3CNF formulas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.formulas()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range fs {
				if stats {
					st := formula.Measure(f)
					fmt.Fprintf(out, "%s\tdepth=%d boxes=%d clauses=%d\n", f, st.ModalDepth, st.Boxes, st.Clauses)
					continue
				}
				fmt.Fprintln(out, f)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "Append modal depth, box and clause counts")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-modal/render"
)

func newDotCmd(a *app) *cobra.Command {
	var normalized bool
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Emit the Graphviz tree of the last generated formula",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.formulas()
			if err != nil {
				return err
			}
			f := fs[len(fs)-1]
			if normalized {
				p, err := a.pipeline(nil)
				if err != nil {
					return err
				}
				f = p.Normalize(f).Output
			}
			a.logger.Debug("rendering formula", "formula", f.String())
			if err := render.WriteGraphviz(cmd.OutOrStdout(), f); err != nil {
				return fmt.Errorf("dot: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&normalized, "normalized", false, "Render the formula after normalization")
	return cmd
}

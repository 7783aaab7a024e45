package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-modal/config"
	"github.com/rfielding/kripke-modal/formula"
	"github.com/rfielding/kripke-modal/generator"
)

// app holds the state shared by every subcommand.
type app struct {
	cfgFile string
	count   int
	seed    uint64

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:          "modalnorm",
		Short:        "modalnorm - generate and normalize multi-modal formulas",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().IntVarP(&a.count, "count", "n", 1, "Number of formulas to generate")
	rootCmd.PersistentFlags().Uint64Var(&a.seed, "seed", 0, "Generator seed (overrides config)")

	rootCmd.AddCommand(newGenCmd(a))
	rootCmd.AddCommand(newNormalizeCmd(a))
	rootCmd.AddCommand(newDotCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generator.Seed = a.seed
	}
	if a.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", a.count)
	}
	a.cfg = cfg
	a.logger = slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: "15:04:05",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}))
	a.logger.Debug("configuration loaded",
		"config", a.cfgFile, "axiom", cfg.Axiom, "passes", cfg.Passes, "seed", cfg.Generator.Seed)
	return nil
}

// formulas draws count formulas from the configured generator.
func (a *app) formulas() ([]formula.Formula, error) {
	g, err := generator.New(a.cfg.GeneratorParams(), a.cfg.Generator.Seed)
	if err != nil {
		return nil, err
	}
	fs := make([]formula.Formula, a.count)
	for i := range fs {
		fs[i] = g.Formula()
	}
	return fs, nil
}

package normalize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/rfielding/kripke-modal/formula"
)

// Options configures a Pipeline. Zero values select the defaults.
type Options struct {
	Passes     []Pass
	Axiom      formula.Axiom
	MaxRounds  int // rounds of the whole pass sequence before giving up on a fixpoint
	InternSize int // interner capacity in hash buckets
	Workers    int // formulas normalized concurrently by RunBatch

	Logger   *slog.Logger
	Registry prometheus.Registerer // nil leaves metrics unregistered
}

const (
	defaultMaxRounds  = 8
	defaultInternSize = 4096
	defaultWorkers    = 4
)

// Pipeline applies its passes in order, round after round, until a round
// leaves the formula unchanged. Results are interned so that equal outputs
// share one instance. A Pipeline is safe for concurrent use.
type Pipeline struct {
	passes    []Pass
	axiom     formula.Axiom
	maxRounds int
	workers   int

	interner *formula.Interner
	logger   *slog.Logger
	metrics  *Metrics
}

func New(opts Options) (*Pipeline, error) {
	p := &Pipeline{
		passes:    opts.Passes,
		axiom:     opts.Axiom,
		maxRounds: opts.MaxRounds,
		workers:   opts.Workers,
		logger:    opts.Logger,
	}
	if len(p.passes) == 0 {
		p.passes = DefaultPasses
	}
	for _, pass := range p.passes {
		if _, err := ParsePass(string(pass)); err != nil {
			return nil, fmt.Errorf("configuring pipeline: %w", err)
		}
	}
	if p.maxRounds <= 0 {
		p.maxRounds = defaultMaxRounds
	}
	if p.workers <= 0 {
		p.workers = defaultWorkers
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	size := opts.InternSize
	if size <= 0 {
		size = defaultInternSize
	}
	in, err := formula.NewInterner(size)
	if err != nil {
		return nil, fmt.Errorf("configuring pipeline: %w", err)
	}
	p.interner = in
	p.metrics = NewMetrics(opts.Registry)
	return p, nil
}

// Passes returns the configured pass order.
func (p *Pipeline) Passes() []Pass { return append([]Pass(nil), p.passes...) }

// PassResult records one application of a pass.
type PassResult struct {
	Pass     Pass
	Round    int
	Changed  bool
	Duration time.Duration
	Before   formula.Stats
	After    formula.Stats
}

// Result is the outcome of normalizing one formula.
type Result struct {
	Input     formula.Formula
	Output    formula.Formula
	Rounds    int
	Converged bool // the last round changed nothing
	Shared    bool // an equal output had already been interned
	Passes    []PassResult
}

// Normalize runs the passes on f until a fixpoint or MaxRounds.
func (p *Pipeline) Normalize(f formula.Formula) Result {
	res := Result{Input: f}
	current := f
	for round := 1; round <= p.maxRounds; round++ {
		res.Rounds = round
		changedInRound := false
		for _, pass := range p.passes {
			pr, next := p.runPass(pass, round, current)
			res.Passes = append(res.Passes, pr)
			if pr.Changed {
				changedInRound = true
			}
			current = next
		}
		if !changedInRound {
			res.Converged = true
			break
		}
	}

	res.Output, res.Shared = p.interner.Intern(current)

	p.metrics.formulas.Inc()
	p.metrics.rounds.Observe(float64(res.Rounds))
	p.metrics.internLookups.WithLabelValues(internLabel(res.Shared)).Inc()
	if !res.Converged {
		p.logger.Warn("normalization did not converge",
			"formula", f.String(), "rounds", res.Rounds)
	}
	return res
}

func (p *Pipeline) runPass(pass Pass, round int, f formula.Formula) (PassResult, formula.Formula) {
	start := time.Now()
	out := pass.apply(f, p.axiom)
	elapsed := time.Since(start)

	pr := PassResult{
		Pass:     pass,
		Round:    round,
		Changed:  !formula.Equal(f, out),
		Duration: elapsed,
		Before:   formula.Measure(f),
		After:    formula.Measure(out),
	}
	p.metrics.passRuns.WithLabelValues(string(pass), resultLabel(pr.Changed)).Inc()
	p.metrics.passDuration.WithLabelValues(string(pass)).Observe(elapsed.Seconds())
	p.logger.Debug("pass applied",
		"pass", string(pass), "round", round, "changed", pr.Changed,
		"size_before", pr.Before.Size, "size_after", pr.After.Size)
	return pr, out
}

// RunBatch normalizes fs concurrently, keeping results in input order. It
// stops early and returns the context error once ctx is done.
func (p *Pipeline) RunBatch(ctx context.Context, fs []formula.Formula) ([]Result, error) {
	if len(fs) == 0 {
		return nil, nil
	}
	p.logger.Debug("normalizing batch", "formulas", len(fs), "workers", p.workers)

	results := make([]Result, len(fs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, f := range fs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.Normalize(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("normalizing batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("normalizing batch: %w", err)
	}

	p.logger.Info("batch normalized", "formulas", len(fs))
	return results, nil
}

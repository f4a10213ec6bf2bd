package stacking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"immichstack/internal/logging"
	"immichstack/internal/pairing"
	"immichstack/internal/services"
)

const stageName = "stacking"

// Source yields candidate groups.
type Source interface {
	Groups(ctx context.Context) ([]pairing.Group, error)
}

// Sink groups asset ids under the first id and reports the primary the
// remote service settled on.
type Sink interface {
	Stack(ctx context.Context, assetIDs []string) (string, error)
}

// Options tune a Runner.
type Options struct {
	DryRun  bool
	Workers int
	Logger  *slog.Logger
	// OnResult is invoked after every pair is handled, in order.
	OnResult func(Result)
}

// Outcome is what happened to a matched pair.
type Outcome string

const (
	OutcomePlanned Outcome = "planned"
	OutcomeStacked Outcome = "stacked"
	OutcomeFailed  Outcome = "failed"
)

// Result records the handling of one matched pair.
type Result struct {
	Pair           pairing.Pair `json:"pair"`
	Outcome        Outcome      `json:"outcome"`
	PrimaryAssetID string       `json:"primary_asset_id,omitempty"`
	Error          string       `json:"error,omitempty"`
	Err            error        `json:"-"`
}

// Report summarizes a pass.
type Report struct {
	DryRun   bool                   `json:"dry_run"`
	Groups   int                    `json:"groups"`
	Skipped  map[pairing.Reason]int `json:"skipped"`
	Results  []Result               `json:"results"`
	Stacked  int                    `json:"stacked"`
	Failed   int                    `json:"failed"`
	Duration time.Duration          `json:"duration_ns"`
}

// Pairs returns the number of matched pairs.
func (r Report) Pairs() int {
	return len(r.Results)
}

// Runner executes passes against a source and sink.
type Runner struct {
	source Source
	sink   Sink
	opts   Options
	logger *slog.Logger
}

// NewRunner validates the collaborators. A sink is only required when the
// runner is not in dry-run mode.
func NewRunner(source Source, sink Sink, opts Options) (*Runner, error) {
	if source == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "new runner", "source is required", nil)
	}
	if sink == nil && !opts.DryRun {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "new runner", "sink is required unless dry-run", nil)
	}
	return &Runner{
		source: source,
		sink:   sink,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "stacking"),
	}, nil
}

// Run performs one pass. The returned report is populated even when err is
// non-nil because of failed stack requests.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	ctx = services.WithStage(ctx, stageName)
	logger := logging.WithContext(ctx, r.logger)
	report := Report{DryRun: r.opts.DryRun, Skipped: make(map[pairing.Reason]int)}

	groups, err := r.source.Groups(ctx)
	if err != nil {
		return report, fmt.Errorf("load candidate groups: %w", err)
	}
	report.Groups = len(groups)
	logger.Info("candidate groups loaded",
		logging.String(logging.FieldEventType, "groups_loaded"),
		logging.Int("groups", len(groups)),
		logging.Bool("dry_run", r.opts.DryRun),
	)

	decisions, err := pairing.EvaluateGroups(ctx, groups, r.opts.Workers)
	if err != nil {
		return report, err
	}

	var failures []error
	for _, decision := range decisions {
		if !decision.Matched() {
			report.Skipped[decision.Reason]++
			logger.Debug("group skipped",
				logging.Args(append(
					logging.DecisionAttrs("pair_match", "skipped", string(decision.Reason)),
					logging.String("group", decision.Group.Key),
					logging.Int("assets", len(decision.Group.Assets)),
				)...)...,
			)
			continue
		}
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}

		result := r.handle(ctx, logger, decision.Pair)
		switch result.Outcome {
		case OutcomeStacked:
			report.Stacked++
		case OutcomeFailed:
			report.Failed++
			failures = append(failures, result.Err)
		}
		report.Results = append(report.Results, result)
		if r.opts.OnResult != nil {
			r.opts.OnResult(result)
		}
	}

	report.Duration = time.Since(start)
	logger.Info("stacking pass complete",
		logging.String(logging.FieldEventType, "pass_complete"),
		logging.Int("groups", report.Groups),
		logging.Int("pairs", report.Pairs()),
		logging.Int("stacked", report.Stacked),
		logging.Int("failed", report.Failed),
		logging.Duration("duration", report.Duration),
	)
	if len(failures) > 0 {
		return report, errors.Join(failures...)
	}
	return report, nil
}

func (r *Runner) handle(ctx context.Context, logger *slog.Logger, pair pairing.Pair) Result {
	logger.Debug("pair matched",
		logging.Args(append(
			logging.DecisionAttrs("pair_match", "matched", "canonical basenames equal"),
			logging.String("group", pair.Key),
			logging.String("primary", pair.Paths[0]),
			logging.String("secondary", pair.Paths[1]),
		)...)...,
	)
	if r.opts.DryRun {
		return Result{Pair: pair, Outcome: OutcomePlanned}
	}

	primary, err := r.sink.Stack(ctx, pair.StackRequest())
	if err != nil {
		wrapped := fmt.Errorf("stack %s with %s: %w", pair.Paths[0], pair.Paths[1], err)
		logging.WarnWithContext(logger, "stack request failed", "stack_failed",
			logging.String("group", pair.Key),
			logging.String("primary_id", pair.IDs[0]),
			logging.String("secondary_id", pair.IDs[1]),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify the API key has stack.create permission"),
			logging.String(logging.FieldImpact, "pair left unstacked; remaining pairs continue"),
		)
		return Result{Pair: pair, Outcome: OutcomeFailed, Error: err.Error(), Err: wrapped}
	}
	logger.Info("pair stacked",
		logging.String(logging.FieldEventType, "pair_stacked"),
		logging.String("group", pair.Key),
		logging.String("primary_asset_id", primary),
	)
	return Result{Pair: pair, Outcome: OutcomeStacked, PrimaryAssetID: primary}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"immichstack/internal/logging"
	"immichstack/internal/runlock"
	"immichstack/internal/services"
	"immichstack/internal/services/immich"
	"immichstack/internal/stacking"
)

type runOptions struct {
	stack   bool
	dryRun  bool
	verbose int
	albums  []string
	json    bool
	workers int
}

func bindRunFlags(cmd *cobra.Command, opts *runOptions) {
	flags := cmd.Flags()
	flags.BoolVar(&opts.stack, "stack", false, "Find duplicates with identical filenames and stack them")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Only print duplicates, do not stack them")
	flags.CountVarP(&opts.verbose, "verbose", "v", "Increase verbosity (-vv enables debug logging)")
	flags.StringArrayVar(&opts.albums, "album", nil, "Pair neighbouring assets of an album (id or name, repeatable) instead of using server duplicates")
	flags.BoolVar(&opts.json, "json", false, "Emit the run report as JSON")
	flags.IntVar(&opts.workers, "workers", 0, "Parallel pair evaluation (defaults to immich.concurrency)")
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match duplicate pairs and stack them (or report with --dry-run)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStacking(cmd, ctx, *opts)
		},
	}
	bindRunFlags(cmd, opts)
	cmd.MarkFlagsMutuallyExclusive("stack", "dry-run")
	cmd.MarkFlagsOneRequired("stack", "dry-run")
	return cmd
}

func runStacking(cmd *cobra.Command, ctx *commandContext, opts runOptions) error {
	if opts.stack == opts.dryRun {
		return services.Wrap(services.ErrValidation, "cli", "run", "exactly one of --stack or --dry-run is required", nil)
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd, opts.verbose)
	if err != nil {
		return err
	}
	client, err := ctx.client(logger)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	runCtx := services.WithRequestID(cmd.Context(), runID)
	logging.WithContext(runCtx, logging.NewComponentLogger(logger, "cli")).Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.Bool("dry_run", opts.dryRun),
		logging.Int("albums", len(opts.albums)),
	)

	var source stacking.Source = immich.DuplicatesSource{Client: client}
	if len(opts.albums) > 0 {
		ids, err := client.ResolveAlbums(runCtx, opts.albums)
		if err != nil {
			return err
		}
		source = immich.AlbumSource{Client: client, AlbumIDs: ids, Concurrency: cfg.Immich.Concurrency}
	}

	if opts.stack {
		lock, err := runlock.Acquire(cfg.LockPath())
		if err != nil {
			if errors.Is(err, runlock.ErrHeld) {
				return services.Wrap(services.ErrTransient, "cli", "run", "", err)
			}
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logging.WarnWithContext(logger, "failed to release run lock", "lock_release_failed",
					logging.String("lock", lock.Path()),
					logging.Error(err),
				)
			}
		}()
	}

	workers := opts.workers
	if workers <= 0 {
		workers = cfg.Immich.Concurrency
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	printer := newCountPrinter()
	var onResult func(stacking.Result)
	if !opts.json {
		onResult = resultPrinter(out, errOut, opts)
	}

	runner, err := stacking.NewRunner(source, client, stacking.Options{
		DryRun:   opts.dryRun,
		Workers:  workers,
		Logger:   logger,
		OnResult: onResult,
	})
	if err != nil {
		return err
	}
	report, runErr := runner.Run(runCtx)

	if opts.json {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
		return runErr
	}

	if report.Pairs() == 0 {
		if runErr == nil && (opts.dryRun || opts.verbose > 0) {
			fmt.Fprintln(out, "No matching duplicates found.")
		}
		return runErr
	}

	if opts.dryRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderPairTable(report))
	}
	if opts.dryRun || opts.verbose > 0 || report.Failed > 0 {
		fmt.Fprintln(out, summaryLine(printer, report))
	}
	if opts.verbose > 0 {
		for _, line := range skippedBreakdown(printer, report) {
			fmt.Fprintln(out, "  skipped "+line)
		}
	}
	return runErr
}

func resultPrinter(out, errOut io.Writer, opts runOptions) func(stacking.Result) {
	colorize := shouldColorize(out)
	errColorize := shouldColorize(errOut)
	return func(result stacking.Result) {
		if opts.dryRun || opts.verbose > 0 {
			fmt.Fprintf(out, "Found pair: %s  ↔  %s\n", result.Pair.Paths[0], result.Pair.Paths[1])
		}
		switch result.Outcome {
		case stacking.OutcomePlanned:
			fmt.Fprintln(out, colorLine("   [dry-run] Would stack these.", statusInfo, colorize))
		case stacking.OutcomeStacked:
			if opts.verbose > 0 {
				fmt.Fprintln(out, colorLine("   ✅ Stacked to "+result.PrimaryAssetID, statusOK, colorize))
			}
		case stacking.OutcomeFailed:
			line := fmt.Sprintf("   ❌ Failed to stack %s  ↔  %s: %s", result.Pair.Paths[0], result.Pair.Paths[1], result.Error)
			fmt.Fprintln(errOut, colorLine(line, statusError, errColorize))
		}
	}
}

func renderPairTable(report stacking.Report) string {
	rows := make([][]string, 0, len(report.Results))
	for i, result := range report.Results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			result.Pair.Paths[0],
			result.Pair.Paths[1],
			string(result.Outcome),
		})
	}
	spec := tableSpec{
		title:   "Matched pairs",
		headers: []string{"#", "Primary", "Secondary", "Outcome"},
		aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	}
	return spec.render(rows)
}

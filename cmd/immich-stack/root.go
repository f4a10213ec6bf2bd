package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:           "immich-stack",
		Short:         "Stack Immich duplicates with identical filenames (ignoring extension)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if cmd == cmd.Root() && !opts.stack && !opts.dryRun {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.stack && !opts.dryRun {
				return cmd.Help()
			}
			return runStacking(cmd, ctx, *opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	bindRunFlags(rootCmd, opts)
	rootCmd.MarkFlagsMutuallyExclusive("stack", "dry-run")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newAlbumsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"setupvault/internal/change"
	"setupvault/internal/scan"
	"setupvault/internal/vault"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan this machine and queue new changes for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			runner := scan.NewRunner(scan.Default(cfg), logger)
			results, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				candidates := results.Candidates()
				if len(candidates) == 0 {
					fmt.Fprintln(out, "No changes observed")
					return nil
				}
				rows := make([][]string, 0, len(candidates))
				for _, candidate := range candidates {
					rows = append(rows, []string{
						candidate.Source,
						truncate(candidate.Title, 48),
						string(candidate.Kind),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Source", "Title", "Kind"}, rows, nil))
				reportScanErrors(cmd, results.Errors())
				return nil
			}

			return ctx.withManager(func(manager *vault.Manager) error {
				summary, err := manager.ApplyScan(cmd.Context(), results)
				if err != nil {
					return err
				}
				reportScanErrors(cmd, summary.Skipped)
				if len(summary.New) == 0 {
					fmt.Fprintf(out, "Observed %d changes; nothing new to review\n", summary.Observed)
					return nil
				}
				fmt.Fprintf(out, "Observed %d changes, %d new:\n", summary.Observed, len(summary.New))
				fmt.Fprintln(out, renderTable(trackedHeaders, buildTrackedRows(summary.New), nil))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report observed changes without updating the vault")
	return cmd
}

func reportScanErrors(cmd *cobra.Command, errs []scan.SourceError) {
	for _, sourceErr := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s scanner failed: %v\n", sourceErr.Source, sourceErr.Err)
	}
}

func newInboxCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "List changes waiting for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				return printTracked(cmd, manager.Inbox, "Inbox is empty")
			})
		},
	}
}

func newSnoozedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "snoozed",
		Short: "List deferred changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				return printTracked(cmd, manager.Snoozed, "Nothing is snoozed")
			})
		},
	}
}

func printTracked(cmd *cobra.Command, list func(context.Context) ([]*change.Tracked, error), empty string) error {
	items, err := list(cmd.Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), empty)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(trackedHeaders, buildTrackedRows(items), nil))
	return nil
}

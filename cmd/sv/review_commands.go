package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"setupvault/internal/change"
	"setupvault/internal/vault"
)

func newAcceptCommand(ctx *commandContext) *cobra.Command {
	var rationale string
	var verification string
	var tags []string

	cmd := &cobra.Command{
		Use:   "accept <id>",
		Short: "Accept a change into the library with a rationale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(rationale) == "" {
				return fmt.Errorf("a rationale is required (use --rationale)")
			}
			return ctx.withManager(func(manager *vault.Manager) error {
				record, err := manager.Accept(cmd.Context(), args[0], vault.AcceptRequest{
					Rationale:    rationale,
					Verification: verification,
					Tags:         tags,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Accepted %s (%s/%s)\n", shortID(record.ID), record.Source, record.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&rationale, "rationale", "r", "", "Why this change was made (required)")
	cmd.Flags().StringVar(&verification, "verification", "", "How to verify the change is still in effect")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag to attach (repeatable)")
	return cmd
}

func newSnoozeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "snooze <id>",
		Short: "Defer an inbox change for later review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				if err := manager.Snooze(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Snoozed %s\n", args[0])
				return nil
			})
		},
	}
}

func newUnsnoozeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unsnooze <id>",
		Short: "Return a snoozed change to the inbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				if err := manager.Unsnooze(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Returned %s to the inbox\n", args[0])
				return nil
			})
		},
	}
}

func newDiscardCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "discard <id>",
		Short: "Drop a queued change without documenting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				item, err := manager.Tracked(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				// Dropping a snoozed item undoes an explicit decision to
				// keep it around, so it gets a confirmation step.
				if item.State == change.StateSnoozed && !yes {
					ok, err := confirm(cmd, fmt.Sprintf("Permanently discard snoozed change %s (%s/%s)?",
						shortID(item.ID), item.Candidate.Source, item.Candidate.Title))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
						return nil
					}
				}
				if err := manager.Discard(cmd.Context(), item.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Discarded %s; it will resurface if observed again\n", shortID(item.ID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Move a record back to the inbox for re-review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				item, err := manager.Restore(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s (%s/%s) to the inbox\n",
					shortID(item.ID), item.Candidate.Source, item.Candidate.Title)
				return nil
			})
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"setupvault/internal/records"
	"setupvault/internal/vault"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var rationale string
	var verification string
	var tags []string
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a record's rationale, verification, tags, or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit := vault.EditRecord{}
			if cmd.Flags().Changed("rationale") {
				edit.Rationale = &rationale
			}
			if cmd.Flags().Changed("verification") {
				edit.Verification = &verification
			}
			if cmd.Flags().Changed("tag") {
				edit.Tags = tags
			}
			if cmd.Flags().Changed("status") {
				status, ok := records.ParseStatus(statusFlag)
				if !ok {
					return fmt.Errorf("unknown status %q (one of: active, ignored)", statusFlag)
				}
				edit.Status = &status
			}
			if edit.Rationale == nil && edit.Verification == nil && edit.Tags == nil && edit.Status == nil {
				return fmt.Errorf("nothing to change; pass at least one of --rationale, --verification, --tag, --status")
			}
			return ctx.withManager(func(manager *vault.Manager) error {
				record, err := manager.Edit(args[0], edit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s/%s)\n", shortID(record.ID), record.Source, record.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&rationale, "rationale", "r", "", "Replace the rationale")
	cmd.Flags().StringVar(&verification, "verification", "", "Replace the verification notes")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Replace the tag set (repeatable)")
	cmd.Flags().StringVar(&statusFlag, "status", "", "Set the record status (active, ignored)")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a record permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				record, err := manager.Record(args[0])
				if err != nil {
					return err
				}
				if !yes {
					ok, err := confirm(cmd, fmt.Sprintf("Permanently delete record %s (%s/%s)?",
						shortID(record.ID), record.Source, record.Title))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
						return nil
					}
				}
				if err := manager.RemoveRecord(record.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s; it will resurface if observed again\n", shortID(record.ID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

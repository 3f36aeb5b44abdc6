package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"setupvault/internal/config"
	"setupvault/internal/vault"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <destination>",
		Short: "Copy the record library to another directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			return ctx.withManager(func(manager *vault.Manager) error {
				count, err := manager.Export(dst)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", count, dst)
				return nil
			})
		},
	}
}

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Report how completely this machine is documented",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				report, err := manager.Health(cmd.Context())
				if err != nil {
					return err
				}
				rows := [][]string{
					{"Sources scanned", fmt.Sprintf("%d", report.Sources)},
					{"Documented (active)", fmt.Sprintf("%d", report.Active)},
					{"Ignored", fmt.Sprintf("%d", report.Ignored)},
					{"Inbox", fmt.Sprintf("%d", report.Inbox)},
					{"Snoozed", fmt.Sprintf("%d", report.Snoozed)},
					{"Health", fmt.Sprintf("%d%%", report.Score)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Metric", "Value"}, rows,
					[]columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"setupvault/internal/change"
	"setupvault/internal/vault"
)

func newCaptureCommand(ctx *commandContext) *cobra.Command {
	var req vault.CaptureRequest
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "capture <title>",
		Short: "Record a change directly, bypassing the inbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Title = args[0]
			if strings.TrimSpace(req.Rationale) == "" {
				return fmt.Errorf("a rationale is required (use --rationale)")
			}
			if kindFlag != "" {
				kind, ok := change.ParseKind(kindFlag)
				if !ok {
					return fmt.Errorf("unknown kind %q (one of: %s)", kindFlag, kindNames())
				}
				req.Kind = kind
			}
			if strings.TrimSpace(req.Source) == "" {
				req.Source = "manual"
			}
			return ctx.withManager(func(manager *vault.Manager) error {
				record, err := manager.Capture(req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Captured %s (%s/%s)\n", shortID(record.ID), record.Source, record.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Source, "source", "manual", "Source label for the change")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "Change kind ("+kindNames()+")")
	cmd.Flags().StringVar(&req.Command, "command", "", "Command that reproduces the change")
	cmd.Flags().StringVar(&req.Path, "path", "", "File path the change affects")
	cmd.Flags().StringVarP(&req.Rationale, "rationale", "r", "", "Why this change was made (required)")
	cmd.Flags().StringVar(&req.Verification, "verification", "", "How to verify the change is still in effect")
	cmd.Flags().StringSliceVarP(&req.Tags, "tag", "t", nil, "Tag to attach (repeatable)")
	return cmd
}

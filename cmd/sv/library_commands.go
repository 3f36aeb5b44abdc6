package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"setupvault/internal/records"
	"setupvault/internal/vault"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string
	var tagFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library records",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status records.Status
			if statusFilter != "" && statusFilter != "all" {
				parsed, ok := records.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q (one of: active, ignored, all)", statusFilter)
				}
				status = parsed
			}
			return ctx.withManager(func(manager *vault.Manager) error {
				library, err := manager.Library()
				if err != nil {
					return err
				}
				filtered := library[:0]
				for _, record := range library {
					if status != "" && record.Status != status {
						continue
					}
					if tagFilter != "" && !hasTag(record, tagFilter) {
						continue
					}
					filtered = append(filtered, record)
				}
				if len(filtered) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No records")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(recordHeaders, buildRecordRows(filtered), nil))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "all", "Filter by record status (active, ignored, all)")
	cmd.Flags().StringVar(&tagFilter, "tag", "", "Filter by tag")
	return cmd
}

func hasTag(record *records.Record, tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, candidate := range record.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a record or queued change in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				out := cmd.OutOrStdout()
				if record, err := manager.Record(args[0]); err == nil {
					printRecord(out, record)
					return nil
				}
				item, err := manager.Tracked(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "ID:       %s\n", item.ID)
				fmt.Fprintf(out, "Queue:    %s\n", item.State)
				fmt.Fprintf(out, "Source:   %s\n", item.Candidate.Source)
				fmt.Fprintf(out, "Title:    %s\n", item.Candidate.Title)
				fmt.Fprintf(out, "Kind:     %s\n", item.Candidate.Kind)
				if item.Candidate.Command != "" {
					fmt.Fprintf(out, "Command:  %s\n", item.Candidate.Command)
				}
				if item.Candidate.Path != "" {
					fmt.Fprintf(out, "Path:     %s\n", item.Candidate.Path)
				}
				fmt.Fprintf(out, "Observed: %s\n", formatTime(item.Candidate.ObservedAt))
				fmt.Fprintf(out, "Queued:   %s\n", formatTime(item.QueuedAt))
				return nil
			})
		},
	}
}

func printRecord(out io.Writer, record *records.Record) {
	fmt.Fprintf(out, "ID:           %s\n", record.ID)
	fmt.Fprintf(out, "Source:       %s\n", record.Source)
	fmt.Fprintf(out, "Title:        %s\n", record.Title)
	fmt.Fprintf(out, "Kind:         %s\n", record.Kind)
	fmt.Fprintf(out, "Status:       %s\n", record.Status)
	if record.Command != "" {
		fmt.Fprintf(out, "Command:      %s\n", record.Command)
	}
	if record.Path != "" {
		fmt.Fprintf(out, "Path:         %s\n", record.Path)
	}
	fmt.Fprintf(out, "System:       %s/%s\n", record.System.OS, record.System.Arch)
	fmt.Fprintf(out, "Detected:     %s\n", formatTime(record.DetectedAt))
	if len(record.Tags) > 0 {
		fmt.Fprintf(out, "Tags:         %s\n", strings.Join(record.Tags, ", "))
	}
	fmt.Fprintf(out, "\nRationale:\n%s\n", record.Rationale)
	if record.Verification != "" {
		fmt.Fprintf(out, "\nVerification:\n%s\n", record.Verification)
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Search library records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(manager *vault.Manager) error {
				results, err := manager.Search(strings.Join(args, " "))
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No matches")
					return nil
				}
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					rows = append(rows, []string{
						shortID(result.Record.ID),
						result.Record.Source,
						truncate(result.Record.Title, 48),
						truncate(result.Record.Rationale, 60),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Source", "Title", "Rationale"}, rows, nil))
				return nil
			})
		},
	}
}

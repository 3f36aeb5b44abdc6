package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"setupvault/internal/vault"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the vault directory layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			// Opening the manager once initializes the state database too.
			if err := ctx.withManager(func(*vault.Manager) error { return nil }); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized vault at %s\n", cfg.Paths.VaultDir)
			return nil
		},
	}
}

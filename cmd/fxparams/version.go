package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MJE43/fxparams/internal/api"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		// Runs without loading configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := api.GetVersionInfo()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fxparams %s\ncommit: %s\nbuilt: %s\n", info.Version, info.GitCommit, info.BuildTime)
			return err
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MJE43/fxparams/internal/config"
	"github.com/MJE43/fxparams/internal/params"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a parameter definitions file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				defs []params.Parameter
				err  error
			)
			if len(args) == 1 {
				defs, err = config.LoadDefinitions(args[0])
			} else {
				defs, err = a.definitions()
			}
			if err != nil {
				return err
			}
			if err := params.Validate(defs); err != nil {
				return fmt.Errorf("definitions are invalid:\n%w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d parameters\n", len(defs))
			return err
		},
	}
}

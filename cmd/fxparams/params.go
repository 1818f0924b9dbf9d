package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MJE43/fxparams/internal/params"
)

func newParamsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the parameter definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := a.definitions()
			if err != nil {
				return err
			}
			records := params.Records(defs)

			var out []byte
			switch format {
			case "json":
				out, err = json.MarshalIndent(records, "", "  ")
				out = append(out, '\n')
			case "yaml":
				out, err = yaml.Marshal(records)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("encode definitions: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

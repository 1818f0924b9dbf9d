package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MJE43/fxparams/internal/paramsvc"
	"github.com/MJE43/fxparams/internal/sandbox"
	"github.com/MJE43/fxparams/internal/scripting"
)

type sampleFlags struct {
	hostScript string
	echo       bool
}

func newSampleCmd(a *app) *cobra.Command {
	flags := &sampleFlags{}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print one random value for every parameter",
		Long: "Defines the parameters on a host and prints one random sample.\n" +
			"The host is the built-in sandbox unless --host-script or --echo selects a JavaScript host.",
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := a.sampleHost(flags)
			if err != nil {
				return err
			}
			defs, err := a.definitions()
			if err != nil {
				return err
			}

			svc := paramsvc.New(host, paramsvc.WithLogger(a.log))
			if err := svc.DefineParameters(defs); err != nil {
				return fmt.Errorf("define parameters: %w", err)
			}
			values, err := svc.SampleRandomParameters()
			if err != nil {
				return fmt.Errorf("sample parameters: %w", err)
			}

			out, err := sandbox.StringifyParams(values)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&flags.hostScript, "host-script", "", "JavaScript file defining a $fx host")
	cmd.Flags().BoolVar(&flags.echo, "echo", false, "Use the built-in JavaScript host that answers with defaults")
	cmd.MarkFlagsMutuallyExclusive("host-script", "echo")
	return cmd
}

func (a *app) sampleHost(flags *sampleFlags) (paramsvc.Host, error) {
	var source string
	switch {
	case flags.hostScript != "":
		data, err := os.ReadFile(flags.hostScript)
		if err != nil {
			return nil, fmt.Errorf("read host script: %w", err)
		}
		source = string(data)
	case flags.echo:
		source = scripting.EchoHost
	default:
		return a.newHost(), nil
	}

	vm := scripting.NewVM(scripting.WithCallTimeout(a.cfg.ScriptTimeout))
	if err := vm.Execute(source); err != nil {
		return nil, err
	}
	return scripting.NewHost(vm), nil
}

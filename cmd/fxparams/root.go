package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MJE43/fxparams/internal/config"
	"github.com/MJE43/fxparams/internal/logx"
	"github.com/MJE43/fxparams/internal/params"
	"github.com/MJE43/fxparams/internal/sandbox"
	"github.com/MJE43/fxparams/internal/sketch"
)

type rootFlags struct {
	hash        string
	minter      string
	iteration   uint64
	context     string
	definitions string
	logLevel    string
	logHuman    bool
}

// app is the state every subcommand shares once flags and env are resolved.
type app struct {
	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "fxparams",
		Short:         "fxparams defines, samples and serves generative-art parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.hash, "hash", "", "Session hash (generated when empty)")
	pf.StringVar(&flags.minter, "minter", "", "Minter address")
	pf.Uint64Var(&flags.iteration, "iteration", 1, "Iteration number")
	pf.StringVar(&flags.context, "context", "standalone", "Execution context")
	pf.StringVarP(&flags.definitions, "definitions", "d", "", "Parameter definitions file (YAML or JSON)")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Log level")
	pf.BoolVar(&flags.logHuman, "log-human", false, "Human-readable log output")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newParamsCmd(a))
	cmd.AddCommand(newSampleCmd(a))
	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// load reads the environment, then applies the flags the user set.
func (a *app) load(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("hash") {
		cfg.Hash = flags.hash
	}
	if changed("minter") {
		cfg.Minter = flags.minter
	}
	if changed("iteration") {
		cfg.Iteration = flags.iteration
	}
	if changed("context") {
		cfg.Context = flags.context
	}
	if changed("definitions") {
		cfg.Definitions = flags.definitions
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("log-human") {
		cfg.LogHuman = flags.logHuman
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logx.New(logx.Options{Level: cfg.LogLevel, HumanReadable: cfg.LogHuman, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// definitions returns the configured definitions file, or the demo set.
func (a *app) definitions() ([]params.Parameter, error) {
	if a.cfg.Definitions == "" {
		return sketch.Definitions(), nil
	}
	return config.LoadDefinitions(a.cfg.Definitions)
}

func (a *app) newHost() *sandbox.Host {
	return sandbox.New(a.cfg.Identity(), sandbox.WithLogger(logx.Component(a.log, "sandbox")))
}

func (a *app) newSketch() (*sketch.Sketch, error) {
	defs, err := a.definitions()
	if err != nil {
		return nil, err
	}
	return sketch.New(a.newHost(),
		sketch.WithLogger(logx.Component(a.log, "sketch")),
		sketch.WithDefinitions(defs),
	), nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"strata/internal/config"
	"strata/internal/prof"
	"strata/internal/trace"
)

type runState struct {
	cfg            config.Config
	tracer         trace.Tracer
	maxDiagnostics int
	color          bool
	timings        bool
	cleanup        func()
}

type runStateKey struct{}

var current *runState

// prepareRun loads the manifest, merges global flags over it and sets up
// tracing. It runs before every subcommand.
func prepareRun(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	st := &runState{cfg: cfg, maxDiagnostics: cfg.Check.MaxDiagnostics, cleanup: func() {}}
	if flags.Changed("max-diagnostics") {
		if st.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if st.maxDiagnostics < 0 {
			return fmt.Errorf("--max-diagnostics must be >= 0")
		}
	}
	if st.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		st.color = true
	case "off":
		st.color = false
	case "auto":
		st.color = isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !st.color

	tracer, cleanup, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	st.tracer, st.cleanup = tracer, cleanup

	profOpts, err := readProfileFlags(cmd)
	if err != nil {
		cleanup()
		return err
	}
	if profOpts.Enabled() {
		profile, err := prof.Start(profOpts)
		if err != nil {
			cleanup()
			return err
		}
		st.cleanup = func() {
			if err := profile.Stop(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "strata: %v\n", err)
			}
			cleanup()
		}
	}
	current = st
	cmd.SetContext(context.WithValue(trace.WithTracer(cmd.Context(), tracer), runStateKey{}, st))
	return nil
}

func readProfileFlags(cmd *cobra.Command) (prof.Options, error) {
	flags := cmd.Root().PersistentFlags()
	var (
		opts prof.Options
		err  error
	)
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return opts, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return opts, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return opts, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return opts, nil
}

// finishRun stops profiles and flushes tracing once the command is done,
// whatever its result.
func finishRun() {
	if current != nil {
		current.cleanup()
		current = nil
	}
}

func stateOf(cmd *cobra.Command) *runState {
	if ctx := cmd.Context(); ctx != nil {
		if st, ok := ctx.Value(runStateKey{}).(*runState); ok {
			return st
		}
	}
	return &runState{cfg: config.Default(), tracer: trace.Nop, maxDiagnostics: 100, cleanup: func() {}}
}

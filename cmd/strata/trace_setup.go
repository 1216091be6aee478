package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"strata/internal/config"
	"strata/internal/trace"
)

// setupTracing merges trace flags over the [trace] section and initializes
// the tracer. It returns a cleanup function that flushes and closes it.
func setupTracing(cmd *cobra.Command, cfg config.Config) (trace.Tracer, func(), error) {
	flags := cmd.Root().PersistentFlags()

	output := cfg.Trace.Output
	if flags.Changed("trace") {
		v, err := flags.GetString("trace")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get trace flag: %w", err)
		}
		output = v
	}
	levelStr := cfg.Trace.Level
	if flags.Changed("trace-level") {
		v, err := flags.GetString("trace-level")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get trace-level flag: %w", err)
		}
		levelStr = v
	}
	modeStr := cfg.Trace.Mode
	if flags.Changed("trace-mode") {
		v, err := flags.GetString("trace-mode")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
		}
		modeStr = v
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && flags.Changed("trace") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		return trace.Nop, func() {}, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return tracer, cleanup, nil
}

// dumpTraceOnError writes the ring buffer, if there is one, after a failed
// run so the events leading up to it are not lost.
func dumpTraceOnError(w io.Writer, tracer trace.Tracer) {
	var ring *trace.RingTracer
	switch t := tracer.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring = t.Ring()
	}
	if ring == nil {
		return
	}
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

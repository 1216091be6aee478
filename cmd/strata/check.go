package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"strata/internal/driver"
	"strata/internal/observ"
	"strata/internal/pipeline"
	"strata/internal/trace"
	"strata/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.st>...",
	Short: "Check source units as one program",
	Long:  `Feed the files, in argument order, into one parse session and report every diagnostic`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel file readers (0=auto)")
}

type checkFlags struct {
	format           outputFormat
	ui               uiMode
	noCache          bool
	warningsAsErrors bool
	withNotes        bool
	jobs             int
}

func readCheckFlags(cmd *cobra.Command, st *runState) (checkFlags, error) {
	var f checkFlags
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.format, err = readFormat(formatStr); err != nil {
		return f, err
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiStr); err != nil {
		return f, err
	}
	if f.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return f, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	f.warningsAsErrors = st.cfg.Check.WarningsAsErrors
	if cmd.Flags().Changed("warnings-as-errors") {
		if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
			return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	return f, nil
}

func driverOptions(st *runState, jobs int) driver.Options {
	return driver.Options{
		Engine:         st.cfg.Check.Engine,
		MaxDiagnostics: st.maxDiagnostics,
		Jobs:           jobs,
		Tracer:         st.tracer,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	st := stateOf(cmd)
	flags, err := readCheckFlags(cmd, st)
	if err != nil {
		return err
	}
	opts := driverOptions(st, flags.jobs)
	if !flags.noCache && st.cfg.Cache.Enabled {
		cache, err := driver.OpenDiskCache(st.cfg.Cache.Dir)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "strata: cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	return checkOnce(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts, flags, st)
}

// checkOnce runs one check and prints its result. It is shared with watch.
func checkOnce(ctx context.Context, out, errOut io.Writer, paths []string, opts driver.Options, flags checkFlags, st *runState) error {
	var timer *observ.Timer
	if st.timings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	var (
		res *driver.CheckResult
		err error
	)
	if wantsProgressUI(flags.ui, flags.format) {
		res, err = checkWithUI(ctx, errOut, paths, opts)
	} else {
		res, err = driver.Check(ctx, paths, opts)
	}
	if err != nil {
		dumpTraceOnError(errOut, st.tracer)
		return err
	}

	if timer != nil && flags.format == formatJSON {
		res.Messages.Add(driver.TimingMessage(timer, ""))
	}
	if err := printMessages(out, res.Messages, res.Units, flags.format, st, flags.withNotes); err != nil {
		return err
	}
	if flags.format == formatPretty {
		if res.Messages.Len() > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, summaryLine(res.Messages, len(res.Units), res.Cached))
		if timer != nil {
			fmt.Fprint(errOut, timer.Summary())
		}
	}

	trace.Point(st.tracer, trace.ScopeDriver, "result", res.Messages.Status().String(), 0)
	if res.HasErrors() || (flags.warningsAsErrors && res.Messages.HasWarnings()) {
		return errDiagnostics
	}
	return nil
}

type checkOutcome struct {
	res *driver.CheckResult
	err error
}

func checkWithUI(ctx context.Context, w io.Writer, paths []string, opts driver.Options) (*driver.CheckResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		o := opts
		o.Sink = pipeline.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, paths, o)
		outcomeCh <- checkOutcome{res: res, err: err}
		close(events)
	}()
	uiErr := ui.Run(w, "checking", paths, events)
	// UI мог выйти раньше: не блокируем отправителя
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.res, uiErr
	}
	return outcome.res, outcome.err
}

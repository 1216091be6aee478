package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"strata/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file.st>...",
	Short: "Re-run check whenever an input changes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	watchCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	watchCmd.Flags().Duration("debounce", driver.DefaultDebounce, "wait this long for writes to settle")
}

func runWatch(cmd *cobra.Command, args []string) error {
	st := stateOf(cmd)
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readFormat(formatStr)
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// кэш не нужен: каждый прогон вызван изменением
	flags := checkFlags{format: format, ui: uiModeOff, withNotes: withNotes}
	opts := driverOptions(st, 0)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	run := func() error {
		err := checkOnce(ctx, out, errOut, args, opts, flags, st)
		if err != nil && !errors.Is(err, errDiagnostics) {
			// файл мог пропасть на время сохранения
			fmt.Fprintf(errOut, "strata: %v\n", err)
		}
		return nil
	}

	if err := run(); err != nil {
		return err
	}
	fmt.Fprintf(errOut, "watching %d files, Ctrl-C to stop\n", len(args))
	return driver.Watch(ctx, args, debounce, func(changed []string) error {
		fmt.Fprintf(errOut, "\n[%s] changed: %s\n", time.Now().Format(time.TimeOnly), strings.Join(changed, ", "))
		return run()
	})
}

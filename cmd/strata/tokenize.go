package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strata/internal/diagfmt"
	"strata/internal/driver"
	"strata/internal/observ"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.st",
	Short: "Tokenize a strata source file",
	Long:  `Tokenize breaks down a strata source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	st := stateOf(cmd)
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	timer := observ.NewTimer()
	var result *driver.TokenizeResult
	timer.Measure("tokenize", func() string {
		result, err = driver.Tokenize(filePath, st.maxDiagnostics)
		if err != nil {
			return "failed"
		}
		return fmt.Sprintf("%d tokens", len(result.Tokens))
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if st.timings {
		result.Bag.Add(timer.Diagnostic())
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     st.color,
			ShowNotes: true,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

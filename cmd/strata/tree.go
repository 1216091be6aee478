package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strata/internal/driver"
	"strata/internal/syntaxtree"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <file.st>...",
	Short: "Print the syntax tree of a program",
	Long:  `Parse the files as one program and print its syntax tree as JSON; diagnostics go to stderr`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTree,
}

func init() {
	addTreeFlags(treeCmd)
}

func addTreeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("types", false, "include resolved types")
	cmd.Flags().Int("max-depth", 0, "limit tree depth (0 = unlimited)")
	cmd.Flags().Bool("pretty", false, "indent the JSON output")
	cmd.Flags().Bool("locations", false, "include source spans")
	cmd.Flags().Bool("comments", false, "include doc comments")
	cmd.Flags().Bool("skip-bodies", false, "omit function bodies")
	cmd.Flags().String("item", "", "export only top-level items with this name")
}

// treeOptions starts from the [tree] section and applies the flags the user
// actually set.
func treeOptions(cmd *cobra.Command, st *runState) (syntaxtree.Options, error) {
	opts := st.cfg.TreeOptions()
	flags := cmd.Flags()
	bools := []struct {
		name string
		dst  *bool
	}{
		{"types", &opts.IncludeResolvedTypes},
		{"pretty", &opts.PrettyPrint},
		{"locations", &opts.IncludeSourceLocations},
		{"comments", &opts.IncludeComments},
		{"skip-bodies", &opts.SkipFunctionBodies},
	}
	for _, b := range bools {
		if !flags.Changed(b.name) {
			continue
		}
		v, err := flags.GetBool(b.name)
		if err != nil {
			return opts, fmt.Errorf("failed to get %s flag: %w", b.name, err)
		}
		*b.dst = v
	}
	if flags.Changed("max-depth") {
		depth, err := flags.GetInt("max-depth")
		if err != nil {
			return opts, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
		if depth < 0 {
			return opts, fmt.Errorf("--max-depth must be >= 0")
		}
		opts.MaxDepth = depth
	}
	item, err := flags.GetString("item")
	if err != nil {
		return opts, fmt.Errorf("failed to get item flag: %w", err)
	}
	opts.Item = item
	return opts, nil
}

func runTree(cmd *cobra.Command, args []string) error {
	st := stateOf(cmd)
	opts, err := treeOptions(cmd, st)
	if err != nil {
		return err
	}
	dopts := driverOptions(st, 0)
	out, list, err := driver.Tree(cmd.Context(), args, opts, dopts)
	if err != nil {
		dumpTraceOnError(cmd.ErrOrStderr(), st.tracer)
		return err
	}
	if list.Len() > 0 {
		if err := printMessages(cmd.ErrOrStderr(), list, nil, formatShort, st, false); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

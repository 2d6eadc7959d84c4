package cmd

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/ezerfernandes/blockswap/internal/region"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

//go:embed help/show.md
var showHelp string

func showCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "show [flags] [filename]",
		Aliases: []string{"s"},
		Short:   "Print the block that would be replaced",
		Long:    showHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showRun(cmd, source(args), opts)
		},

		DisableAutoGenTag: true,
	}

	return cmd
}

func showRun(cmd *cobra.Command, filename string, opts *options) error {
	block, result, err := region.ReadFile(opts.fsys, filename, opts.markers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for i, line := range block {
		fmt.Fprintf(out, "%5d  %s", result.StartLine+i, line)
	}

	if len(block) != 0 && !bytes.HasSuffix(block[len(block)-1], []byte("\n")) {
		fmt.Fprintln(out)
	}

	if !opts.quiet {
		tbl := table.New("File", "Start", "End", "Lines", "Terminated").WithWriter(cmd.ErrOrStderr())
		tbl.AddRow(filename, result.StartLine, result.EndLine, result.Removed, result.Terminated)
		tbl.Print()
	}

	return result.Err(opts.strict)
}

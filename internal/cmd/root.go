// Package cmd implements the blockswap command line.
package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ezerfernandes/blockswap/internal/region"
	"github.com/spf13/cobra"
)

//go:embed help/root.md
var rootHelp string

const (
	defaultFile  = "app/page.tsx"
	defaultStart = "/* SECTION 1: HERO - Mockup Design"
	defaultEnd   = "</section>"
)

type statusFunc func(format string, args ...interface{})

type options struct {
	markers region.Markers

	withFile     string
	withMarkdown string
	lang         string
	meta         map[string]string
	indent       int

	strict  bool
	backup  string
	exec    string
	quiet   bool
	verbose bool

	fsys   region.FS
	status statusFunc
	log    *slog.Logger
}

func (opts *options) createStatus(w io.Writer) {
	if opts.quiet {
		opts.status = func(string, ...interface{}) {}
	} else {
		opts.status = func(format string, args ...interface{}) {
			fmt.Fprintf(w, format, args...)
		}
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}

	opts.log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the command line and exits with status 1 on failure.
func Execute(args []string, stdout, stderr io.Writer) {
	if err := rootCmd(region.OSFS(), stdout, stderr, args).Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(fsys region.FS, stdout, stderr io.Writer, args []string) *cobra.Command {
	opts := &options{fsys: fsys} //nolint:exhaustruct

	root := &cobra.Command{ //nolint:exhaustruct
		Use:           "blockswap [flags] [filename]",
		Short:         "Replace a marker-delimited block of a page with a snippet",
		Long:          rootHelp,
		Args:          checkargs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.createStatus(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return replaceRun(cmd, source(args), opts)
		},

		DisableAutoGenTag: true,
	}

	if args == nil {
		args = []string{}
	}

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	markerFlags(root, opts)
	quietFlag(root, opts)

	root.Flags().StringVar(&opts.withFile, "with-file", "", "read the replacement from a text file")
	root.Flags().StringVar(&opts.withMarkdown, "with-markdown", "", "read the replacement from a fenced code block of a Markdown file")
	root.Flags().StringVarP(&opts.lang, "lang", "l", "", "glob pattern for the code block language, used with --with-markdown")
	root.Flags().StringToStringVarP(&opts.meta, "meta", "m", nil, "glob patterns for code block metadata, used with --with-markdown")
	root.Flags().IntVar(&opts.indent, "indent", 0, "indent non-blank replacement lines by this many spaces")
	root.Flags().StringVar(&opts.backup, "backup", "", "save the original file with this suffix before writing")
	root.Flags().StringVar(&opts.exec, "exec", "", "shell command to run after the file is written; {} is the file path")

	root.MarkFlagsMutuallyExclusive("with-file", "with-markdown")

	root.AddCommand(showCmd(opts))

	return root
}

func markerFlags(cmd *cobra.Command, opts *options) {
	cmd.PersistentFlags().StringVar(&opts.markers.Start, "start", defaultStart, "text contained in the first line of the block")
	cmd.PersistentFlags().StringVar(&opts.markers.End, "end", defaultEnd, "trimmed content of the last line of the block")
	cmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "fail if the start marker is missing or the block is not closed")
}

func quietFlag(cmd *cobra.Command, opts *options) {
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress diagnostics")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details")
}

func checkargs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: %d", errTooManyArgs, len(args))
	}

	return nil
}

func source(args []string) string {
	if len(args) == 0 {
		return defaultFile
	}

	return args[0]
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"minic/internal/astio"
	"minic/internal/diagfmt"
	"minic/internal/driver"
	"minic/internal/trace"
)

var outputFormats = map[string]struct{}{
	"plain":  {},
	"short":  {},
	"pretty": {},
	"json":   {},
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] <tree-file|directory|->...",
	Short: "Check syntax trees for undeclared and redeclared variables",
	Long: `Check one or more syntax trees produced by the MiniC parser.
Directories are searched recursively for *.json, *.yaml, *.yml, *.mp and *.msgpack files.
A single "-" reads one tree from standard input (see --input-format).

Exit status: 0 ok, 1 a file could not be opened, 2 a tree could not be decoded,
3 semantic analysis found errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "plain", "diagnostic output format (plain|short|pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in pretty and json output")
	checkCmd.Flags().String("path-mode", "auto", "how file paths are shown (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("fullpath", false, "shorthand for --path-mode=absolute")
	checkCmd.Flags().String("input-format", "", "tree format for stdin or unrecognised extensions (json|yaml|msgpack)")
}

type checkOutput struct {
	format    string
	maxDiags  int
	color     bool
	quiet     bool
	timings   bool
	withNotes bool
	pathMode  diagfmt.PathMode
	stdout    io.Writer
	stderr    io.Writer
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := activeConfig
	if _, ok := outputFormats[cfg.format]; !ok {
		return fmt.Errorf("unknown format: %s", cfg.format)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("unknown path mode: %s", pathModeStr)
	}
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	inputFormatStr, err := cmd.Flags().GetString("input-format")
	if err != nil {
		return fmt.Errorf("failed to get input-format flag: %w", err)
	}

	opts := driver.Options{
		MaxDiagnostics: cfg.maxDiagnostics,
		EnableTimings:  showTimings,
		Observer:       phaseTracer(cmd.Context()),
	}
	if inputFormatStr != "" {
		if opts.Format, err = astio.ParseFormat(inputFormatStr); err != nil {
			return err
		}
	}

	out := checkOutput{
		format:    cfg.format,
		maxDiags:  cfg.maxDiagnostics,
		pathMode:  pathMode,
		color:     useColor(cfg.color),
		quiet:     quiet,
		timings:   showTimings,
		withNotes: withNotes,
		stdout:    cmd.OutOrStdout(),
		stderr:    cmd.ErrOrStderr(),
	}

	results, err := collectResults(cmd, args, opts, cfg.jobs, out)
	if err != nil {
		return err
	}
	if code := out.render(results); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// collectResults runs the checks. In plain format a lone file streams its
// "Error: ..." lines while the walk runs, like the original front end did;
// with several files each file's lines are captured and replayed in order.
func collectResults(cmd *cobra.Command, args []string, opts driver.Options, jobs int, out checkOutput) ([]*driver.FileResult, error) {
	ctx := cmd.Context()

	if len(args) == 1 && args[0] == "-" {
		if opts.Format == 0 {
			return nil, fmt.Errorf("reading from stdin requires --input-format")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if out.format == "plain" {
			opts.Stream = out.stderr
		}
		return []*driver.FileResult{driver.CheckBytes(ctx, "<stdin>", data, opts.Format, opts)}, nil
	}

	var files []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			// missing files are reported per file with exit status 1
			files = append(files, arg)
			continue
		}
		listed, err := driver.ListTreeFiles(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}
		files = append(files, listed...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no tree files found in %v", args)
	}
	if out.format == "plain" {
		opts.Stream = out.stderr
	}
	return driver.CheckFiles(ctx, files, opts, jobs)
}

// phaseTracer reports phase ends as trace points when per-file events are
// traced.
func phaseTracer(ctx context.Context) driver.PhaseObserver {
	tracer := trace.FromContext(ctx)
	if !tracer.Level().ShouldEmit(trace.ScopeFile) {
		return nil
	}
	parent := trace.CurrentSpan(ctx)
	return func(ev driver.PhaseEvent) {
		if ev.Status != driver.PhaseEnd {
			return
		}
		trace.Point(tracer, trace.ScopeFile, "phase."+ev.Name, ev.Path, parent, map[string]string{
			"elapsed": ev.Elapsed.String(),
		})
	}
}

package main

import (
	"fmt"
	"io"

	"minic/internal/diagfmt"
	"minic/internal/driver"
)

// render prints diagnostics and outcome lines and returns the exit code:
// the highest status among all files.
func (o checkOutput) render(results []*driver.FileResult) int {
	exit := 0
	for _, res := range results {
		exit = max(exit, res.Status.ExitCode())
	}

	if o.format == "json" {
		files := make([]diagfmt.FileDiagnostics, len(results))
		for i, res := range results {
			if o.timings {
				driver.AppendTimingDiagnostic(res)
			}
			files[i] = diagfmt.FileDiagnostics{Path: res.Path, Bag: res.Bag}
		}
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			IncludeNotes:     o.withNotes,
			Max:              o.maxDiags,
		}
		if err := diagfmt.JSON(o.stdout, files, opts); err != nil {
			fmt.Fprintf(o.stderr, "minic: failed to format diagnostics: %v\n", err)
			return max(exit, 1)
		}
		return exit
	}

	multi := len(results) > 1
	for _, res := range results {
		o.renderFile(res, multi)
		if o.timings && res.Timing != nil {
			fmt.Fprint(o.stderr, res.Timing.Summary(res.Path))
		}
	}
	return exit
}

func (o checkOutput) renderFile(res *driver.FileResult, multi bool) {
	prefix := ""
	if multi {
		prefix = res.Path + ": "
	}
	line := func(w io.Writer, msg string) {
		fmt.Fprintln(w, prefix+msg)
	}

	switch res.Status {
	case driver.StatusLoadFailed:
		line(o.stderr, fmt.Sprintf("Could not open file '%s'", res.Path))
		return
	case driver.StatusDecodeFailed:
		line(o.stderr, "Parsing unsuccessful.")
		if !o.quiet && res.Err != nil {
			fmt.Fprintf(o.stderr, "  %v\n", res.Err)
		}
		return
	}
	if res.Err != nil {
		line(o.stderr, res.Err.Error())
		return
	}

	if !o.quiet {
		line(o.stdout, "Parsing successful.")
	}
	o.renderDiagnostics(res, prefix)
	if res.Status == driver.StatusSemaFailed {
		line(o.stderr, "Semantic analysis unsuccessful.")
	} else if !o.quiet {
		line(o.stdout, "Semantic analysis successful.")
	}
}

func (o checkOutput) renderDiagnostics(res *driver.FileResult, prefix string) {
	switch o.format {
	case "plain":
		// пусто, если файл писал в stderr во время обхода
		_ = diagfmt.Plain(o.stderr, prefix, res.Stream)
	case "short":
		_ = diagfmt.Short(o.stdout, res.Path, res.Bag, o.pathMode)
	case "pretty":
		_ = diagfmt.Pretty(o.stdout, res.Path, res.Bag, diagfmt.PrettyOpts{
			Color:     o.color,
			PathMode:  o.pathMode,
			ShowNotes: o.withNotes,
		})
	}
}

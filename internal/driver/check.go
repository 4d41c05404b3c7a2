package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"minic/internal/ast"
	"minic/internal/astio"
	"minic/internal/diag"
	"minic/internal/observ"
	"minic/internal/sema"
	"minic/internal/source"
	"minic/internal/trace"
)

// Status classifies the outcome of checking one file.
type Status uint8

const (
	StatusOK Status = iota
	// StatusLoadFailed means the input file could not be read.
	StatusLoadFailed
	// StatusDecodeFailed means the file was read but is not a valid tree.
	StatusDecodeFailed
	// StatusSemaFailed means scope checking found at least one error.
	StatusSemaFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusLoadFailed:
		return "load failed"
	case StatusDecodeFailed:
		return "decode failed"
	case StatusSemaFailed:
		return "semantic analysis failed"
	default:
		return "unknown"
	}
}

// ExitCode maps a status to the process exit code.
func (s Status) ExitCode() int {
	return int(s)
}

// Options configure CheckFile and CheckDir.
type Options struct {
	MaxDiagnostics int
	// Format overrides the format derived from the file extension.
	Format astio.Format
	// Stream, when set, receives "Error: ..." lines while the walk runs.
	Stream io.Writer
	EnableTimings bool
	Observer      PhaseObserver
}

// FileResult holds everything produced by checking one file.
type FileResult struct {
	Path    string
	Status  Status
	Err     error
	Bag     *diag.Bag
	Builder *ast.Builder
	Root    ast.ProgramID
	Timing  *observ.Report
	// Stream holds the "Error: ..." lines of a file checked alongside
	// others. Unlike Bag it is never capped.
	Stream string
}

// ErrorFound reports whether the file failed at any stage.
func (r *FileResult) ErrorFound() bool {
	return r.Status != StatusOK || r.Err != nil
}

func (o Options) reporter(bag *diag.Bag) diag.Reporter {
	if o.Stream == nil {
		return diag.BagReporter{Bag: bag}
	}
	return diag.MultiReporter{diag.BagReporter{Bag: bag}, diag.StreamReporter{W: o.Stream}}
}

// pipeline carries the per-file state shared by CheckFile and CheckBytes.
type pipeline struct {
	ctx   context.Context
	opts  Options
	res   *FileResult
	timer *observ.Timer
	span  *trace.Span
}

func newPipeline(ctx context.Context, path string, opts Options) *pipeline {
	p := &pipeline{
		ctx:  ctx,
		opts: opts,
		res: &FileResult{
			Path: path,
			Bag:  diag.NewBag(opts.MaxDiagnostics),
		},
		span: trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "check_file", trace.CurrentSpan(ctx)).
			WithExtra("path", path),
	}
	if opts.EnableTimings {
		p.timer = observ.NewTimer()
	}
	return p
}

func (p *pipeline) begin(name string) (int, time.Time) {
	if p.opts.Observer != nil {
		p.opts.Observer(PhaseEvent{Path: p.res.Path, Name: name, Status: PhaseStart})
	}
	if p.timer == nil {
		return -1, time.Now()
	}
	return p.timer.Begin(name), time.Now()
}

func (p *pipeline) end(idx int, name string, started time.Time, note string) {
	if p.opts.Observer != nil {
		p.opts.Observer(PhaseEvent{Path: p.res.Path, Name: name, Status: PhaseEnd, Elapsed: time.Since(started)})
	}
	if p.timer != nil && idx >= 0 {
		p.timer.End(idx, note)
	}
}

func (p *pipeline) finish() *FileResult {
	if p.timer != nil {
		report := p.timer.Report()
		p.res.Timing = &report
	}
	detail := strconv.Itoa(p.res.Bag.Len()) + " diagnostics"
	p.span.WithExtra("result", p.res.Status.String())
	if p.res.ErrorFound() {
		p.span.Fail(detail)
	} else {
		p.span.End(detail)
	}
	return p.res
}

// analyze decodes data and runs scope checking over the tree.
func (p *pipeline) analyze(data []byte, format astio.Format) {
	res := p.res
	decodeIdx, started := p.begin("decode")
	var err error
	res.Builder, res.Root, err = astio.Load(data, format)
	decodeNote := ""
	if err == nil && res.Root.IsValid() {
		decodeNote = fmt.Sprintf("stmts=%d exprs=%d", res.Builder.Stmts.Arena.Len(), res.Builder.Exprs.Arena.Len())
	}
	p.end(decodeIdx, "decode", started, decodeNote)
	if err != nil {
		res.fail(StatusDecodeFailed, diag.IODecodeError, fmt.Errorf("cannot decode %s: %w", res.Path, err))
		return
	}

	if err := p.ctx.Err(); err != nil {
		res.Err = err
		return
	}

	semaIdx, started := p.begin("sema")
	errorFound := sema.Analyze(res.Builder, res.Root, sema.Options{
		Reporter:   p.opts.reporter(res.Bag),
		Tracer:     trace.FromContext(p.ctx),
		ParentSpan: p.span.ID(),
	})
	semaNote := ""
	if p.timer != nil {
		semaNote = fmt.Sprintf("diags=%d", res.Bag.Len())
	}
	p.end(semaIdx, "sema", started, semaNote)
	if errorFound {
		res.Status = StatusSemaFailed
	}
}

// CheckFile loads path, decodes the syntax tree it contains and runs scope
// checking over it. Load and decode failures are recorded in the result
// rather than returned, so a directory check can keep going.
func CheckFile(ctx context.Context, path string, opts Options) *FileResult {
	p := newPipeline(ctx, path, opts)
	defer p.finish()

	loadIdx, started := p.begin("load")
	data, err := os.ReadFile(path)
	p.end(loadIdx, "load", started, "")
	if err != nil {
		p.res.fail(StatusLoadFailed, diag.IOLoadFileError, fmt.Errorf("could not open file '%s': %w", path, err))
		return p.res
	}

	format := opts.Format
	if format == 0 {
		if format, err = astio.FormatFromPath(path); err != nil {
			p.res.fail(StatusDecodeFailed, diag.IODecodeError, err)
			return p.res
		}
	}
	p.analyze(data, format)
	return p.res
}

// CheckBytes runs decode and scope checking over an in-memory document,
// such as a tree read from standard input. name labels the result.
func CheckBytes(ctx context.Context, name string, data []byte, format astio.Format, opts Options) *FileResult {
	p := newPipeline(ctx, name, opts)
	defer p.finish()
	p.analyze(data, format)
	return p.res
}

// fail records a failure that happened before the walk. The diagnostic goes
// to the bag only; the stream carries scope errors alone.
func (r *FileResult) fail(status Status, code diag.Code, err error) {
	r.Status = status
	r.Err = err
	diag.ReportError(diag.BagReporter{Bag: r.Bag}, code, source.Pos{}, err.Error()).Emit()
}

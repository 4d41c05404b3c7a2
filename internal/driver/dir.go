package driver

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"minic/internal/astio"
	"minic/internal/trace"
)

// ListTreeFiles возвращает отсортированный список файлов с деревьями в директории.
func ListTreeFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && astio.IsTreeFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every tree file under dir. Files are processed by at most
// jobs goroutines (0 means GOMAXPROCS), each with its own walker and scope
// stack. Results are sorted by path. The returned error covers walking the
// directory and context cancellation; per-file failures live in the results.
func CheckDir(ctx context.Context, dir string, opts Options, jobs int) ([]*FileResult, error) {
	files, err := ListTreeFiles(dir)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, files, opts, jobs)
}

// CheckFiles checks the given files concurrently, preserving their order in
// the result. With more than one file a Stream in opts is not written to,
// since parallel walks would interleave; each file captures its lines in
// FileResult.Stream instead.
func CheckFiles(ctx context.Context, files []string, opts Options, jobs int) ([]*FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	buffered := len(files) > 1 && opts.Stream != nil

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "check_files", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if !buffered {
				results[i] = CheckFile(gctx, path, opts)
				return nil
			}
			var stream bytes.Buffer
			fileOpts := opts
			fileOpts.Stream = &stream
			res := CheckFile(gctx, path, fileOpts)
			res.Stream = stream.String()
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

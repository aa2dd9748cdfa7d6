package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/ztrue/tracerr"
	"golang.org/x/sync/errgroup"

	"github.com/pontaoski/remygo/ast"
	"github.com/pontaoski/remygo/errors"
	"github.com/pontaoski/remygo/manifest"
	"github.com/pontaoski/remygo/parser"
)

type parsedFile struct {
	Path   string
	Source string
	AST    ast.File
	Err    error
}

// parseFiles parses every path with at most jobs files in flight. Read errors
// abort the whole run; lex and parse errors are kept on the file they belong
// to. Results are in the order of paths.
func parseFiles(ctx context.Context, paths []string, jobs int) ([]parsedFile, error) {
	results := make([]parsedFile, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return tracerr.Wrap(err)
			}

			start := time.Now()
			file, err := parser.Parse(path, string(data))
			debug.Printf("parsed %s in %s", path, time.Since(start))

			results[i] = parsedFile{Path: path, Source: string(data), AST: file, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkProject parses the sources named by the manifest in dir and reports
// every diagnostic to w. It returns the number of files that failed.
func checkProject(ctx context.Context, w io.Writer, dir string, jobs int) (failed, total int, err error) {
	m, path, err := manifest.Discover(dir)
	if err != nil {
		return 0, 0, err
	}
	debug.Printf("using %s (package %s)", path, m.Package)

	paths, err := m.Files(dir)
	if err != nil {
		return 0, 0, err
	}

	results, err := parseFiles(ctx, paths, jobs)
	if err != nil {
		return 0, 0, err
	}

	reporter := errors.NewReporter(w)
	for _, res := range results {
		if res.Err != nil {
			reporter.Report(res.Source, res.Err)
			failed++
		}
	}
	return failed, len(results), nil
}

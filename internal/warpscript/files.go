package warpscript

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"wsparse/internal/model"
)

// StdinPath names standard input in a file list.
const StdinPath = "-"

// ReadScript reads a script file, or standard input for StdinPath.
func ReadScript(path string) (string, error) {
	if path == StdinPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading script %s", path)
	}
	return string(data), nil
}

// AnalyzeFiles analyses paths with at most jobs concurrent readers. A file
// that cannot be read gets its error recorded in its result; the other
// files are still analysed. Results keep the order of paths.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string, jobs int) ([]model.FileResult, error) {
	results := make([]model.FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i].Path = path
			src, err := ReadScript(path)
			if err != nil {
				results[i].Err = err.Error()
				return nil
			}
			results[i].Analysis = a.Analyze(src)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "analysing scripts")
	}
	return results, nil
}

package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RunBatch runs the pipeline over several files concurrently, with at most
// workers in flight (workers <= 0 means unbounded). Results are returned in
// input order. The first failure cancels the remaining work.
func RunBatch(ctx context.Context, paths []string, opts Options, workers int) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	Logger().Info("batch started", "files", len(paths), "workers", workers)
	for i, path := range paths {
		g.Go(func() error {
			res, err := RunFile(gctx, path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	Logger().Info("batch finished", "files", len(paths))
	return results, nil
}

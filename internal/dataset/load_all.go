package dataset

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// LoadAll loads every path concurrently. Results keep the input order; the
// first failure cancels the remaining loads and is returned.
func LoadAll(ctx context.Context, paths []string) ([]*Dataset, error) {
	out := make([]*Dataset, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, p := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			ds, err := Resolve(p)
			if err != nil {
				return err
			}
			out[i] = ds
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

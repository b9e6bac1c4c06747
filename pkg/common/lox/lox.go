package lox

import (
	"context"

	"golang.org/x/sync/errgroup"
)

func Map[I any, R any](ctx context.Context, parallel bool, iterable []I, callback func(ctx context.Context, iteratee I) (R, error)) ([]R, error) {
	if parallel {
		return ParallelMap(ctx, iterable, callback)
	}
	return SerialMap(ctx, iterable, callback)
}

func ParallelMap[I any, R any](ctx context.Context, iterable []I, callback func(ctx context.Context, iteratee I) (R, error)) ([]R, error) {
	g, gctx := errgroup.WithContext(ctx)
	results := make([]R, len(iterable))
	for i, iteratee := range iterable {
		g.Go(func() error {
			result, err := callback(gctx, iteratee)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

func SerialMap[I any, R any](ctx context.Context, iterable []I, callback func(ctx context.Context, iteratee I) (R, error)) ([]R, error) {
	results := make([]R, len(iterable))
	for i, iteratee := range iterable {
		result, err := callback(ctx, iteratee)
		if err != nil {
			return nil, err
		}
		results[i] = result
	}
	return results, nil
}

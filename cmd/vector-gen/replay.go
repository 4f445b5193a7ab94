package main

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/vectors"
	"golang.org/x/sync/errgroup"
)

// replayAll reads back every vector directory in dirs and replays it through the state
// transition. Vectors are independent, so up to GOMAXPROCS of them replay at once and
// the first failure cancels the rest.
func replayAll(ctx context.Context, dirs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for _, dir := range dirs {
		dir := dir
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()
			return replay(ctx, dir)
		})
	}
	return g.Wait()
}

func replay(ctx context.Context, dir string) error {
	v, _, err := vectors.Read(dir)
	if err != nil {
		return errors.Wrapf(err, "could not read back %s", dir)
	}
	if _, err := vectors.Replay(ctx, v, v.BLS); err != nil {
		return errors.Wrapf(err, "replay of %s", v.Name)
	}
	log.WithField("scenario", v.Name).Debug("Replayed vector")
	return nil
}

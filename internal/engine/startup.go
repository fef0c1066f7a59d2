package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrStartupFailure is returned when any startup initialiser fails.
var ErrStartupFailure = errors.New("startup failure")

// Initializer prepares one collaborator (sprites, audio, storage) before the
// loop starts.
type Initializer struct {
	Name string
	Run  func(ctx context.Context) error
}

// Startup runs every initialiser concurrently and waits for all of them.
// The first failure cancels the others and is returned wrapped in
// ErrStartupFailure; the loop must not start in that case.
func Startup(ctx context.Context, inits ...Initializer) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, in := range inits {
		if in.Run == nil {
			continue
		}
		g.Go(func() error {
			if err := in.Run(gctx); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrStartupFailure, in.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

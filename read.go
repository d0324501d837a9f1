package statmeta

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/statmeta/internal/logger"
	"github.com/simonhull/statmeta/internal/registry"
)

// ReadMRSets reads the MR descriptor blob stored in the file at path and
// decodes it.
//
// The file is opened with the backend chosen by WithBackend ("file" by
// default). The whole file is treated as one blob.
//
// Example:
//
//	sets, err := statmeta.ReadMRSets("survey.mrsets")
//	if err != nil {
//		return err
//	}
//	for _, s := range sets {
//		fmt.Printf("%s (%s): %v\n", s.Name, s.Kind(), s.Subvariables)
//	}
func ReadMRSets(path string, opts ...Option) ([]MRSet, error) {
	options := applyOptions(opts)

	factory := registry.Get(options.backend)
	if factory == nil {
		return nil, fmt.Errorf("unknown backend %q (available: %v)", options.backend, registry.Names())
	}

	s := NewSession(factory(), opts...)
	defer s.Release()

	if err := s.Open(path); err != nil {
		return nil, err
	}

	blob, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	return s.DecodeMR(blob)
}

// ReadMRSetsContext is ReadMRSets with cancellation.
//
// The context is checked before starting and after every chunk read; a
// cancelled context aborts the read with an error matching both
// ErrUserAbort and the context's error. A logger stored with
// ContextWithLogger is used when opts carry none.
func ReadMRSetsContext(ctx context.Context, path string, opts ...Option) ([]MRSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The context logger comes first so WithLogger in opts overrides it, and
	// the context handler wraps any handler supplied in opts. The caller's
	// slice is never appended to.
	options := applyOptions(opts)
	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithLogger(logger.FromContext(ctx)))
	all = append(all, opts...)
	all = append(all, WithProgressHandler(chainProgress(ContextProgress(ctx), options.progress)))

	sets, err := ReadMRSets(path, all...)
	if err != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", err, ctx.Err())
	}
	return sets, err
}

// ReadMRSetsMany reads and decodes several files concurrently.
//
// Files are processed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails, no results are returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	all, err := statmeta.ReadMRSetsMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
func ReadMRSetsMany(ctx context.Context, paths ...string) ([][]MRSet, error) {
	return ReadMRSetsManyWith(ctx, paths, nil)
}

// ReadMRSetsManyWith is ReadMRSetsMany with options applied to every file.
func ReadMRSetsManyWith(ctx context.Context, paths []string, opts []Option) ([][]MRSet, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU()) // Limit concurrent operations

	results := make([][]MRSet, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			sets, err := ReadMRSetsContext(ctx, path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = sets
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ContextProgress returns a ProgressHandler that aborts once ctx is done.
func ContextProgress(ctx context.Context) ProgressHandler {
	return func(float64) bool {
		return ctx.Err() != nil
	}
}

// chainProgress aborts when any non-nil handler aborts. Every handler sees
// every update until then.
func chainProgress(handlers ...ProgressHandler) ProgressHandler {
	return func(progress float64) bool {
		abort := false
		for _, h := range handlers {
			if h != nil && h(progress) {
				abort = true
			}
		}
		return abort
	}
}

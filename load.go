package nightaudit

import (
	"context"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/logging"
	"github.com/agentstation/nightaudit/pkg/sources"
)

// parsed is the outcome of parsing one export.
type parsed struct {
	ds  sources.Dataset
	err error
}

// LoadFiles parses every file concurrently, then applies the outcomes one
// by one in source order so the resulting state does not depend on which
// parse finished first. Errors of all sources are joined.
func (a *auditor) LoadFiles(ctx context.Context, files map[sources.ID]string) error {
	logger := logging.FromContext(ctx)

	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make(map[sources.ID]parsed, len(files))

	for id, path := range files {
		wg.Add(1)
		go func(id sources.ID, path string) {
			defer wg.Done()

			logger.Info().Str("source", id.String()).Str("file", path).Msg("Loading")
			ds, err := a.parseFile(ctx, id, path)

			mu.Lock()
			results[id] = parsed{ds: ds, err: err}
			mu.Unlock()
		}(id, path)
	}

	wg.Wait()

	var errs []error
	for _, id := range sources.IDs() {
		res, ok := results[id]
		if !ok {
			continue
		}
		if res.err != nil {
			errs = append(errs, res.err)
			if errors.IsUnsupportedSource(res.err) || ctx.Err() != nil || isOpenError(res.err) {
				continue
			}
		}
		a.commit(id, res.ds, res.err)
	}
	for _, id := range slices.Sorted(maps.Keys(results)) {
		if !id.IsValid() {
			errs = append(errs, results[id].err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// openError marks a file that could not be opened; no state changes.
type openError struct{ error }

func (e openError) Unwrap() error { return e.error }

func isOpenError(err error) bool {
	var oe openError
	return errors.As(err, &oe)
}

func (a *auditor) parseFile(ctx context.Context, id sources.ID, path string) (sources.Dataset, error) {
	f, err := openExport(path)
	if err != nil {
		return nil, openError{err}
	}
	defer func() { _ = f.Close() }()

	ds, err := a.parse(logging.WithFile(ctx, path), id, f)
	if err != nil {
		return nil, errors.WrapParse(id.String(), path, err)
	}
	return ds, nil
}

func openExport(path string) (*os.File, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	return f, nil
}

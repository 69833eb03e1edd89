package artifacts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNotInitialized is returned by Get when Initialize has not completed.
var ErrNotInitialized = errors.New("artifact store not initialized")

// RunSource yields the identifier of the run whose artifacts should be served.
type RunSource interface {
	RunID() (string, error)
}

// Loader fetches the artifact bundle for a run from a registry backend.
type Loader interface {
	Load(ctx context.Context, runID string) (*Bundle, error)
}

// Store holds the one artifact bundle for the process's lifetime.
//
// Initialize must complete before the servers accept traffic; after that the
// bundle is read-only, so concurrent Get calls need no coordination.
type Store struct {
	bundle *Bundle
	logger *zap.Logger
}

// NewStore creates an empty artifact store.
func NewStore(logger *zap.Logger) *Store {
	return &Store{logger: logger}
}

// Initialize reads the run identifier from the source, loads that run's
// artifacts and keeps them for the process's lifetime. Any failure here is
// a startup failure; the caller must not begin serving.
func (s *Store) Initialize(ctx context.Context, src RunSource, loader Loader) (*Bundle, error) {
	runID, err := src.RunID()
	if err != nil {
		return nil, fmt.Errorf("failed to read run identifier: %w", err)
	}

	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, fmt.Errorf("run identifier is empty")
	}

	bundle, err := loader.Load(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifacts for run %s: %w", runID, err)
	}

	s.bundle = bundle
	s.logger.Info("artifacts loaded, ready for inference",
		zap.String("run_id", runID),
		zap.Int("params", len(bundle.Params)))

	return bundle, nil
}

// Get returns the loaded bundle. Calling Get before Initialize is an
// ordering bug in the caller and is surfaced, never masked with empty data.
func (s *Store) Get() (*Bundle, error) {
	if s.bundle == nil {
		return nil, ErrNotInitialized
	}
	return s.bundle, nil
}

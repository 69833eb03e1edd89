package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tagserve/tagserve/internal/artifacts"
	"go.uber.org/zap"
)

// Registry loads artifact bundles from a directory tree where each run
// stores params.json and performance.json under <dir>/<runID>/.
type Registry struct {
	dir    string
	logger *zap.Logger
}

// NewRegistry creates a new file-backed artifact registry.
func NewRegistry(dir string, logger *zap.Logger) *Registry {
	return &Registry{
		dir:    dir,
		logger: logger,
	}
}

// Load reads the run's params and performance documents from disk.
func (r *Registry) Load(ctx context.Context, runID string) (*artifacts.Bundle, error) {
	params, err := readDocument(filepath.Join(r.dir, runID, "params.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to load params: %w", err)
	}

	performance, err := readDocument(filepath.Join(r.dir, runID, "performance.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to load performance: %w", err)
	}

	r.logger.Debug("loaded artifact bundle from disk",
		zap.String("run_id", runID),
		zap.String("dir", r.dir))

	return &artifacts.Bundle{
		RunID:       runID,
		Params:      params,
		Performance: performance,
	}, nil
}

func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}

	return doc, nil
}

package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeRun(t *testing.T, dir, runID, params, performance string) {
	t.Helper()

	runDir := filepath.Join(dir, runID)
	require.NoError(t, os.MkdirAll(runDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "params.json"), []byte(params), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "performance.json"), []byte(performance), 0o644))
}

func TestRegistry_Load(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	writeRun(t, dir, "run-42",
		`{"lr": 0.01, "embedding_dim": 128}`,
		`{"overall": {"precision": 0.91}}`)

	registry := NewRegistry(dir, zap.NewNop())
	bundle, err := registry.Load(context.Background(), "run-42")
	req.NoError(err)

	req.Equal("run-42", bundle.RunID)
	req.Equal(0.01, bundle.Params["lr"])
	req.Equal(float64(128), bundle.Params["embedding_dim"])

	overall := bundle.Performance["overall"].(map[string]any)
	req.Equal(0.91, overall["precision"])
}

func TestRegistry_LoadUnknownRun(t *testing.T) {
	req := require.New(t)

	registry := NewRegistry(t.TempDir(), zap.NewNop())
	_, err := registry.Load(context.Background(), "no-such-run")
	req.Error(err)
}

func TestRegistry_LoadMalformedDocument(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	writeRun(t, dir, "run-42", `not json`, `{}`)

	registry := NewRegistry(dir, zap.NewNop())
	_, err := registry.Load(context.Background(), "run-42")
	req.Error(err)
}

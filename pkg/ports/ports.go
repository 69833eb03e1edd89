// Package ports defines the interfaces between the serving facade and its
// external collaborators. Adapters under pkg/adapters implement them.
package ports

import (
	"context"
	"time"

	"github.com/tagserve/tagserve/internal/artifacts"
)

// Predictor produces one prediction per input text, in input order, using
// the loaded artifact bundle.
type Predictor interface {
	Predict(ctx context.Context, texts []string, bundle *artifacts.Bundle) ([]artifacts.Prediction, error)
}

// MetricsCollector records serving metrics.
type MetricsCollector interface {
	RecordRequest(endpoint string, status int)
	RecordPredictions(count int, duration time.Duration)
	RecordArtifactLoad(runID string, duration time.Duration)
}

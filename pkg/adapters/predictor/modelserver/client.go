package modelserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tagserve/tagserve/internal/artifacts"
	"go.uber.org/zap"
)

// Client calls an external model-serving process over HTTP. The server
// holds the trained model itself; this facade only forwards texts and the
// run identifier of the loaded bundle.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new model server client.
func NewClient(url string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type predictRequest struct {
	RunID string   `json:"run_id"`
	Texts []string `json:"texts"`
}

type predictResponse struct {
	Predictions []artifacts.Prediction `json:"predictions"`
}

// Predict sends the texts to the model server and returns its predictions
// in input order. Any failure propagates to the caller unretried.
func (c *Client) Predict(ctx context.Context, texts []string, bundle *artifacts.Bundle) ([]artifacts.Prediction, error) {
	body, err := json.Marshal(predictRequest{
		RunID: bundle.RunID,
		Texts: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model server request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("model server returned status %d: %s", resp.StatusCode, msg)
	}

	var result predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode predict response: %w", err)
	}

	if len(result.Predictions) != len(texts) {
		return nil, fmt.Errorf("model server returned %d predictions for %d texts",
			len(result.Predictions), len(texts))
	}

	c.logger.Debug("model server prediction complete",
		zap.Int("texts", len(texts)),
		zap.Duration("duration", time.Since(start)))

	return result.Predictions, nil
}

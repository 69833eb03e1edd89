package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tagserve/tagserve/internal/artifacts"
	"go.uber.org/zap"
)

// Registry loads artifact bundles published to Redis by the training
// pipeline. Each run stores two JSON documents:
//
//	tagserve:runs:<runID>:params
//	tagserve:runs:<runID>:performance
type Registry struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRegistry creates a new Redis-backed artifact registry.
func NewRegistry(client *redis.Client, logger *zap.Logger) *Registry {
	return &Registry{
		client: client,
		logger: logger,
	}
}

// Load reads the run's params and performance documents from Redis.
func (r *Registry) Load(ctx context.Context, runID string) (*artifacts.Bundle, error) {
	params, err := r.readDocument(ctx, paramsKey(runID))
	if err != nil {
		return nil, fmt.Errorf("failed to load params: %w", err)
	}

	performance, err := r.readDocument(ctx, performanceKey(runID))
	if err != nil {
		return nil, fmt.Errorf("failed to load performance: %w", err)
	}

	r.logger.Debug("loaded artifact bundle from redis",
		zap.String("run_id", runID))

	return &artifacts.Bundle{
		RunID:       runID,
		Params:      params,
		Performance: performance,
	}, nil
}

func (r *Registry) readDocument(ctx context.Context, key string) (map[string]any, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("document not found: %s", key)
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return doc, nil
}

func paramsKey(runID string) string {
	return fmt.Sprintf("tagserve:runs:%s:params", runID)
}

func performanceKey(runID string) string {
	return fmt.Sprintf("tagserve:runs:%s:performance", runID)
}

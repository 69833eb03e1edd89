package predictor

import (
	"fmt"
	"time"

	"github.com/tagserve/tagserve/pkg/adapters/predictor/anthropic"
	"github.com/tagserve/tagserve/pkg/adapters/predictor/modelserver"
	"github.com/tagserve/tagserve/pkg/ports"
	"go.uber.org/zap"
)

// Config holds prediction service configuration
type Config struct {
	Provider string
	URL      string
	APIKey   string
	Model    string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewClient creates a new prediction client based on provider
func NewClient(cfg *Config) (ports.Predictor, error) {
	switch cfg.Provider {
	case "modelserver":
		return modelserver.NewClient(cfg.URL, cfg.Timeout, cfg.Logger), nil
	case "anthropic":
		return anthropic.NewClient(cfg.APIKey, cfg.Model, cfg.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported predictor provider: %s", cfg.Provider)
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the serving facade
type Config struct {
	// Server configuration
	HTTPPort int    `env:"TAGSERVE_HTTP_PORT" envDefault:"8080"`
	GRPCPort int    `env:"TAGSERVE_GRPC_PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Model artifacts
	Model ModelConfig

	// Artifact registry backend
	Registry RegistryConfig

	// Redis configuration (registry backend "redis")
	Redis RedisConfig

	// Prediction service
	Predictor PredictorConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// ModelConfig locates the served run's artifacts
type ModelConfig struct {
	Dir       string `env:"MODEL_DIR" envDefault:"model"`
	RunIDFile string `env:"MODEL_RUN_ID_FILE" envDefault:"model/run_id.txt"`
}

// RegistryConfig selects the artifact registry backend
type RegistryConfig struct {
	Backend string `env:"REGISTRY_BACKEND" envDefault:"file"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASS"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// Connection pool settings
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// PredictorConfig holds prediction service configuration
type PredictorConfig struct {
	Provider string `env:"PREDICTOR_PROVIDER" envDefault:"modelserver"`

	// Model server provider
	URL string `env:"PREDICTOR_URL" envDefault:"http://localhost:9000/predict"`

	// Anthropic provider
	APIKey string `env:"PREDICTOR_API_KEY"`
	Model  string `env:"PREDICTOR_MODEL" envDefault:"claude-3-5-sonnet-20241022"`

	RequestTimeout time.Duration `env:"PREDICTOR_REQUEST_TIMEOUT" envDefault:"30s"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server ports
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}

	// Validate model config
	if c.Model.RunIDFile == "" {
		return fmt.Errorf("run identifier file is required")
	}

	// Validate registry config
	switch c.Registry.Backend {
	case "file":
		if c.Model.Dir == "" {
			return fmt.Errorf("model directory is required for the file registry")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis registry")
		}
	default:
		return fmt.Errorf("unsupported registry backend: %s (must be 'file' or 'redis')", c.Registry.Backend)
	}

	// Validate predictor config
	switch c.Predictor.Provider {
	case "modelserver":
		if c.Predictor.URL == "" {
			return fmt.Errorf("predictor URL is required for the modelserver provider")
		}
	case "anthropic":
		if c.Predictor.APIKey == "" {
			return fmt.Errorf("predictor API key is required for the anthropic provider")
		}
	default:
		return fmt.Errorf("unsupported predictor provider: %s (must be 'modelserver' or 'anthropic')", c.Predictor.Provider)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

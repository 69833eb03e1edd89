package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tagserve/tagserve/internal/artifacts"
	"github.com/tagserve/tagserve/internal/config"
	"github.com/tagserve/tagserve/pkg/adapters/metrics/prometheus"
	"github.com/tagserve/tagserve/pkg/adapters/predictor"
	fileregistry "github.com/tagserve/tagserve/pkg/adapters/registry/file"
	redisregistry "github.com/tagserve/tagserve/pkg/adapters/registry/redis"
	"github.com/tagserve/tagserve/pkg/adapters/runsource"
	"github.com/tagserve/tagserve/pkg/api/grpc"
	"github.com/tagserve/tagserve/pkg/api/http"
	"github.com/tagserve/tagserve/pkg/api/websocket"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting tagserve",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	ctx := context.Background()

	// Initialize artifact registry
	var loader artifacts.Loader
	var redisClient *goredis.Client

	switch cfg.Registry.Backend {
	case "redis":
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		loader = redisregistry.NewRegistry(redisClient, logger)
	default:
		loader = fileregistry.NewRegistry(cfg.Model.Dir, logger)
	}

	metricsCollector := prometheus.NewCollector()

	// Load artifacts before accepting any traffic; a failure here is fatal
	store := artifacts.NewStore(logger)
	loadStart := time.Now()
	bundle, err := store.Initialize(ctx, runsource.NewFile(cfg.Model.RunIDFile), loader)
	if err != nil {
		logger.Fatal("failed to load artifacts", zap.Error(err))
	}
	metricsCollector.RecordArtifactLoad(bundle.RunID, time.Since(loadStart))

	// Initialize prediction client
	predictorClient, err := predictor.NewClient(&predictor.Config{
		Provider: cfg.Predictor.Provider,
		URL:      cfg.Predictor.URL,
		APIKey:   cfg.Predictor.APIKey,
		Model:    cfg.Predictor.Model,
		Timeout:  cfg.Predictor.RequestTimeout,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("failed to create prediction client", zap.Error(err))
	}

	// Initialize API servers
	httpServer := http.NewServer(&http.Config{
		Port:      cfg.HTTPPort,
		Store:     store,
		Predictor: predictorClient,
		Metrics:   metricsCollector,
		Logger:    logger,
	})

	// Add WebSocket handler to HTTP server
	wsHandler := websocket.NewHandler(store, predictorClient, logger)
	httpServer.SetupWebSocket(wsHandler)

	grpcServer, err := grpc.NewServer(&grpc.Config{
		Port:   cfg.GRPCPort,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to create gRPC server", zap.Error(err))
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			logger.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	grpcServer.SetServing()

	logger.Info("tagserve started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.String("run_id", bundle.RunID),
		zap.String("predictor", cfg.Predictor.Provider))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := grpcServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("gRPC server shutdown error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Info("tagserve shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}

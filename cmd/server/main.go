package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sabaa/horary/chartbuilder"
	"github.com/sabaa/horary/ephemeris"
	"github.com/sabaa/horary/geocode"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/log"
	"github.com/sabaa/horary/observability"
	"github.com/sabaa/horary/server"
	"github.com/sabaa/horary/tzresolve"
)

var logger = log.WithComponent("server-main")

func main() {
	var (
		httpPort   = flag.String("http-port", "8080", "HTTP server port")
		configPath = flag.String("config", "", "Path to a YAML config file (built-in defaults when empty)")
		redisAddr  = flag.String("redis-addr", "", "Redis address for the shared ephemeris cache (in-process LRU when empty)")
		cacheSize  = flag.Int("cache-size", 1024, "In-process ephemeris cache size")
	)
	flag.Parse()

	ctx := context.Background()
	observer := observability.Observer()
	defer func() {
		if err := observer.Shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown observability", "error", err)
		}
	}()

	cfg := horaryconfig.Default()
	if *configPath != "" {
		loaded, err := horaryconfig.Load(*configPath)
		if err != nil {
			logger.Error("Failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	cache, err := buildCache(*redisAddr, *cacheSize)
	if err != nil {
		logger.Error("Failed to build ephemeris cache", "error", err)
		os.Exit(1)
	}

	manager := ephemeris.NewManager(ephemeris.NewAnalyticalProvider(), nil, cache)
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Error("Failed to close ephemeris manager", "error", err)
		}
	}()

	builder := chartbuilder.New(cfg, geocode.NewGazetteer(), tzresolve.NewResolver(), manager)
	engine := chartbuilder.NewEngine(cfg, builder)
	srv := server.New(engine, *httpPort)

	logger.Info("Starting horary judgment server", "http_port", *httpPort)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Failed to stop HTTP server gracefully", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func buildCache(redisAddr string, lruSize int) (ephemeris.Cache, error) {
	if redisAddr != "" {
		return ephemeris.NewRedisCache(redisAddr, "", 0)
	}
	return ephemeris.NewLRUCache(lruSize)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/go_word_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_word_frequency/internal/config"
	"github.com/baditaflorin/go_word_frequency/internal/metrics"
	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
)

// Default configuration
const (
	DefaultConcurrency = 0 // 0 means fasthttp's default
	MetricsNamespace   = "wordcount"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "", "Path to a YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dataDir := flag.String("dir", "", "Directory served by /files and /analyze (overrides config)")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent connections (0 = default)")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	warmUp := flag.Bool("warmup", false, "Warm up normalizers and word banks before serving")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dataDir != "" {
		cfg.Scan.DataDir = *dataDir
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logger
	lg, err := createLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Close()

	lg.Info("Starting word frequency HTTP server",
		"port", cfg.Server.Port,
		"data_dir", cfg.Scan.DataDir,
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
		"concurrency", *concurrency,
	)

	srv, err := newServer(cfg, lg, metrics.NewCollector(MetricsNamespace))
	if err != nil {
		lg.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	if *warmUp {
		srv.warmUp(context.Background())
	}

	server := &fasthttp.Server{
		Handler:               srv.requestHandler,
		Name:                  "WordFrequencyServer",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           *concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lg.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			lg.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	lg.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		lg.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	lg.Info("Server stopped")
}

// createLogger creates and configures a logger
func createLogger(cfg config.LogConfig) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	lgCfg := logger.DefaultConfig(output, true)
	lgCfg.MaxFileSize = 100 * 1024 * 1024 // 100MB
	lg, err := l.NewStandardFactory().CreateLogger(lgCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return lg, nil
}

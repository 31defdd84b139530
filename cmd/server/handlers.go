package main

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	wordfrequency "github.com/baditaflorin/go_word_frequency"
	"github.com/baditaflorin/go_word_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_word_frequency/internal/config"
	"github.com/baditaflorin/go_word_frequency/internal/metrics"
	"github.com/baditaflorin/go_word_frequency/internal/ports"
	"github.com/baditaflorin/go_word_frequency/internal/render"
	"github.com/baditaflorin/go_word_frequency/internal/scan"
	"github.com/baditaflorin/go_word_frequency/internal/warmup"
	"github.com/baditaflorin/l"
)

// Request limits
const (
	countTimeout    = 30 * time.Second
	analyzeTimeout  = 60 * time.Second
	maxEntriesLimit = 1000
)

var knownRoutes = map[string]bool{
	"/health":  true,
	"/count":   true,
	"/files":   true,
	"/analyze": true,
}

// CountRequest asks for the top words of an inline text.
type CountRequest struct {
	Text       string `json:"text"`
	MaxEntries int    `json:"max_entries,omitempty"`
}

// AnalyzeRequest asks for the top words of one data file or of all of them.
type AnalyzeRequest struct {
	File       string `json:"file,omitempty"`
	All        bool   `json:"all,omitempty"`
	MaxEntries int    `json:"max_entries,omitempty"`
}

// FilesResponse lists the data files.
type FilesResponse struct {
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// server wires the analyzer to HTTP handlers.
type server struct {
	cfg            *config.Config
	baseLogger     l.Logger
	logger         ports.Logger
	metrics        *metrics.Collector
	metricsHandler fasthttp.RequestHandler

	mu        sync.Mutex
	analyzers map[int]*wordfrequency.Analyzer // keyed by max entries
}

func newServer(cfg *config.Config, lg l.Logger, collector *metrics.Collector) (*server, error) {
	s := &server{
		cfg:            cfg,
		baseLogger:     lg,
		logger:         logger.FromExisting(lg),
		metrics:        collector,
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(collector.Handler()),
		analyzers:      make(map[int]*wordfrequency.Analyzer),
	}
	// Fail fast on a bad stopword file instead of on the first request.
	if _, err := s.analyzer(cfg.Analysis.MaxEntries); err != nil {
		return nil, err
	}
	return s, nil
}

// analyzer returns an analyzer reporting maxEntries words, building it on first use.
func (s *server) analyzer(maxEntries int) (*wordfrequency.Analyzer, error) {
	if maxEntries <= 0 {
		maxEntries = s.cfg.Analysis.MaxEntries
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.analyzers[maxEntries]; ok {
		return a, nil
	}

	opts := []wordfrequency.Option{
		wordfrequency.WithLogger(s.baseLogger),
		wordfrequency.WithMaxEntries(maxEntries),
		wordfrequency.WithExtension(s.cfg.Scan.Extension),
		wordfrequency.WithParallel(s.cfg.Scan.Workers),
		wordfrequency.WithChunkSize(s.cfg.Scan.ChunkSize),
		wordfrequency.WithMetrics(s.metrics),
	}
	if s.cfg.Analysis.StopwordsFile != "" {
		opts = append(opts, wordfrequency.WithStopwordsFile(s.cfg.Analysis.StopwordsFile))
	}
	if s.cfg.Analysis.Normalizer == config.NormalizerDefault {
		opts = append(opts, wordfrequency.WithDefaultNormalizer())
	}
	a, err := wordfrequency.New(opts...)
	if err != nil {
		return nil, err
	}
	s.analyzers[maxEntries] = a
	return a, nil
}

// warmUp exercises the default analyzer so the first requests do not pay for
// pool allocation.
func (s *server) warmUp(ctx context.Context) {
	a, err := s.analyzer(0)
	if err != nil {
		s.logger.Warn("Skipping warmup", "error", err)
		return
	}
	cfg := warmup.DefaultWarmupConfig()
	cfg.Duration = 2 * time.Second
	wm := warmup.NewManager(s.logger, cfg)
	wm.RegisterNormalizer(a.Normalizer())
	wm.RegisterRanker(func() ports.Ranker { return a.NewBank() })
	wm.WarmUp(ctx)
}

// requestHandler is the main fasthttp request handler
func (s *server) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	path := string(ctx.Path())

	if path == "/metrics" {
		s.metricsHandler(ctx)
		return
	}

	ctx.Response.Header.Set("Content-Type", "application/json")

	switch path {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/count":
		s.handleCount(ctx)
	case "/files":
		s.handleFiles(ctx)
	case "/analyze":
		s.handleAnalyze(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	// Unknown paths share one label value to bound metric cardinality
	route := path
	if !knownRoutes[path] {
		route = "unmatched"
	}

	duration := time.Since(startTime)
	s.metrics.ObserveRequest(string(ctx.Method()), route, ctx.Response.StatusCode(), duration)
	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleCount ranks the words of an inline text
func (s *server) handleCount(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req CountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.MaxEntries < 0 || req.MaxEntries > maxEntriesLimit {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "max_entries must be between 0 and 1000")
		return
	}

	a, err := s.analyzer(req.MaxEntries)
	if err != nil {
		s.internalError(ctx, err)
		return
	}

	c, cancel := context.WithTimeout(context.Background(), countTimeout)
	defer cancel()

	wb, err := a.AnalyzeText(c, req.Text)
	if err != nil {
		s.internalError(ctx, err)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, render.NewDocument(wb.Title(), wb.TopWords(), wb.IsEmpty(), nil))
}

// handleFiles lists the data files
func (s *server) handleFiles(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	a, err := s.analyzer(0)
	if err != nil {
		s.internalError(ctx, err)
		return
	}
	paths, err := a.Scanner(s.cfg.Scan.DataDir).List()
	if errors.Is(err, fs.ErrNotExist) {
		s.dataDirMissing(ctx)
		return
	}
	if err != nil {
		s.internalError(ctx, err)
		return
	}

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, FilesResponse{Dir: s.cfg.Scan.DataDir, Files: names})
}

// handleAnalyze ranks the words of one data file or all of them
func (s *server) handleAnalyze(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req AnalyzeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.All == (req.File != "") {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Exactly one of file or all is required")
		return
	}
	if req.MaxEntries < 0 || req.MaxEntries > maxEntriesLimit {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "max_entries must be between 0 and 1000")
		return
	}

	a, err := s.analyzer(req.MaxEntries)
	if err != nil {
		s.internalError(ctx, err)
		return
	}

	c, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	var (
		wb     *wordfrequency.WordBank
		report wordfrequency.Report
	)
	if req.All {
		wb, report, err = a.AnalyzeDir(c, s.cfg.Scan.DataDir)
		if errors.Is(err, scan.ErrNoFiles) {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			s.writeJSONError(ctx, "No files found to analyze")
			return
		}
		if errors.Is(err, fs.ErrNotExist) {
			s.dataDirMissing(ctx)
			return
		}
		if err != nil {
			s.internalError(ctx, err)
			return
		}
	} else {
		path, err := a.Scanner(s.cfg.Scan.DataDir).Resolve(req.File)
		if errors.Is(err, scan.ErrNotFound) {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			s.writeJSONError(ctx, "File not found: "+req.File)
			return
		}
		if errors.Is(err, fs.ErrNotExist) {
			s.dataDirMissing(ctx)
			return
		}
		if err != nil {
			s.internalError(ctx, err)
			return
		}
		wb, report = a.AnalyzeFiles(c, path)
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, render.NewDocument(wb.Title(), wb.TopWords(), wb.IsEmpty(), report.Results))
}

func (s *server) dataDirMissing(ctx *fasthttp.RequestCtx) {
	s.logger.Warn("Data directory does not exist", "dir", s.cfg.Scan.DataDir)
	ctx.SetStatusCode(fasthttp.StatusNotFound)
	s.writeJSONError(ctx, "Data directory not found")
}

func (s *server) internalError(ctx *fasthttp.RequestCtx, err error) {
	s.logger.Error("Request failed", "path", string(ctx.Path()), "error", err)
	ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	s.writeJSONError(ctx, "Internal server error")
}

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

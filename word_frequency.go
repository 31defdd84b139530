// word_frequency.go
// Package wordfrequency counts word frequencies across text and reports the most frequent words.
//
// Every whitespace-delimited token is sanitized (ASCII punctuation other than
// apostrophe and hyphen is removed anywhere in the token, then the token is
// lower-cased) and discarded when it is empty, a stopword, or unprintable.
// The English stopword list is used by default; "each" is never a stopword.
//
// Results are ranked by count descending. Ties keep the order in which the
// words were first seen.
//
// This version uses the functional options pattern to configure the number of
// reported words, stopwords, normalizer, file scanning and logging.
package wordfrequency

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/baditaflorin/go_word_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_word_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_word_frequency/internal/adapters/source"
	"github.com/baditaflorin/go_word_frequency/internal/core/domain"
	"github.com/baditaflorin/go_word_frequency/internal/core/wordbank"
	"github.com/baditaflorin/go_word_frequency/internal/metrics"
	"github.com/baditaflorin/go_word_frequency/internal/ports"
	"github.com/baditaflorin/go_word_frequency/internal/scan"
	"github.com/baditaflorin/l"
)

type (
	// WordBank accumulates counts; see the wordbank package.
	WordBank = wordbank.WordBank
	// RankedEntry is a word with its count.
	RankedEntry = domain.RankedEntry
	// TopList is a ranked list of entries.
	TopList = domain.TopList
	// FileResult is the outcome of processing one file.
	FileResult = domain.FileResult
	// Report collects file outcomes of a scan.
	Report = scan.Report
)

// DefaultMaxEntries is the default number of reported words.
const DefaultMaxEntries = wordbank.DefaultMaxEntries

// ErrNoFiles is returned when a directory scan finds nothing to analyze.
var ErrNoFiles = scan.ErrNoFiles

// Config holds configuration options for an Analyzer.
type Config struct {
	MaxEntries     int
	Stopwords      *wordbank.StopwordSet
	StopwordsFile  string
	NormalizerType normalizer.NormalizerType
	ChunkSize      int
	Workers        int
	Extension      string
	Progress       scan.ProgressFunc
	Metrics        *metrics.Collector
	// Logger for tracing computation steps.
	Logger ports.Logger
}

// Option defines a functional option for configuring the analyzer.
type Option func(*Config)

// WithMaxEntries sets how many words TopWords reports.
func WithMaxEntries(n int) Option {
	return func(cfg *Config) {
		cfg.MaxEntries = n
	}
}

// WithStopwords replaces the built-in stopword list.
// It cannot be combined with WithStopwordsFile.
func WithStopwords(words ...string) Option {
	return func(cfg *Config) {
		set := wordbank.NewStopwordSet(words...)
		cfg.Stopwords = &set
	}
}

// WithStopwordsFile loads the stopword list from a newline-delimited file.
// It cannot be combined with WithStopwords.
func WithStopwordsFile(path string) Option {
	return func(cfg *Config) {
		cfg.StopwordsFile = path
	}
}

// WithOptimizedNormalizer selects the table-driven normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *Config) {
		cfg.NormalizerType = normalizer.OptimizedNormalizerType
	}
}

// WithDefaultNormalizer selects the straightforward normalizer.
func WithDefaultNormalizer() Option {
	return func(cfg *Config) {
		cfg.NormalizerType = normalizer.DefaultNormalizerType
	}
}

// WithChunkSize sets the read size used when streaming input.
func WithChunkSize(size int) Option {
	return func(cfg *Config) {
		cfg.ChunkSize = size
	}
}

// WithParallel reads up to workers files at once during directory scans.
func WithParallel(workers int) Option {
	return func(cfg *Config) {
		cfg.Workers = workers
	}
}

// WithExtension sets the file extension picked up by directory scans.
func WithExtension(ext string) Option {
	return func(cfg *Config) {
		cfg.Extension = ext
	}
}

// WithProgress registers a callback invoked with each file name before it is read.
func WithProgress(fn func(name string)) Option {
	return func(cfg *Config) {
		cfg.Progress = fn
	}
}

// WithMetrics records file outcomes on the given collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(cfg *Config) {
		cfg.Metrics = c
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithSilentLogging discards all log output.
func WithSilentLogging() Option {
	return func(cfg *Config) {
		cfg.Logger = logger.NewNopLogger()
	}
}

// Analyzer builds word banks and feeds text into them.
type Analyzer struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
	stopwords  wordbank.StopwordSet
	reader     *source.Reader
}

// New creates a new Analyzer with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*Analyzer, error) {
	cfg := Config{
		MaxEntries:     DefaultMaxEntries,
		NormalizerType: normalizer.OptimizedNormalizerType,
		Workers:        1,
		Extension:      scan.DefaultExtension,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := (wordbank.Config{MaxEntries: cfg.MaxEntries}).Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	if cfg.Stopwords != nil && cfg.StopwordsFile != "" {
		return nil, errors.New("WithStopwords and WithStopwordsFile are mutually exclusive")
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = createDefaultLogger()
		if err != nil {
			return nil, err
		}
	}

	stopwords := wordbank.EnglishStopwords()
	switch {
	case cfg.Stopwords != nil:
		stopwords = *cfg.Stopwords
	case cfg.StopwordsFile != "":
		loaded, err := wordbank.LoadStopwordsFile(cfg.StopwordsFile)
		if err != nil {
			return nil, err
		}
		stopwords = loaded
	}

	a := &Analyzer{
		config:     cfg,
		logger:     cfg.Logger,
		normalizer: normalizer.NewNormalizerFactory().CreateNormalizer(cfg.NormalizerType),
		stopwords:  stopwords,
		reader:     source.NewReader(cfg.Logger, source.WithChunkSize(cfg.ChunkSize)),
	}

	a.logger.Debug("Analyzer initialized",
		"max_entries", cfg.MaxEntries,
		"stopwords", stopwords.Len(),
		"workers", cfg.Workers,
	)
	return a, nil
}

// NewBank returns an empty WordBank configured like the analyzer.
func (a *Analyzer) NewBank() *WordBank {
	wb, err := wordbank.New(
		wordbank.Config{MaxEntries: a.config.MaxEntries},
		a.stopwords,
		a.normalizer,
		a.logger,
	)
	if err != nil {
		// New already validated the same configuration.
		panic(fmt.Sprintf("wordfrequency: %v", err))
	}
	return wb
}

// AnalyzeText counts the words of text.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*WordBank, error) {
	return a.AnalyzeReader(ctx, strings.NewReader(text))
}

// AnalyzeReader counts the words read from r line by line.
func (a *Analyzer) AnalyzeReader(ctx context.Context, r io.Reader) (*WordBank, error) {
	wb := a.NewBank()
	stats, err := a.reader.Feed(ctx, r, wb)
	if a.config.Metrics != nil {
		a.config.Metrics.ObserveTokens(stats.Tokens, stats.Bytes)
	}
	if err != nil {
		return wb, err
	}
	a.logger.Debug("Analyzed text",
		"lines", stats.Lines,
		"tokens", stats.Tokens,
		"accepted", wb.Total(),
		"distinct", wb.Len(),
	)
	return wb, nil
}

// Scanner returns a scanner over dir configured like the analyzer.
func (a *Analyzer) Scanner(dir string) *scan.Scanner {
	return scan.New(dir, a.reader, a.logger,
		scan.WithExtension(a.config.Extension),
		scan.WithParallel(a.config.Workers),
		scan.WithProgress(a.config.Progress),
	)
}

// AnalyzeDir counts the words of every matching file below dir.
// It returns ErrNoFiles when the directory holds no matching file.
func (a *Analyzer) AnalyzeDir(ctx context.Context, dir string) (*WordBank, Report, error) {
	wb := a.NewBank()
	report, err := a.Scanner(dir).ProcessAll(ctx, wb)
	a.observe(report)
	return wb, report, err
}

// AnalyzeFiles counts the words of the given files. Unreadable files are
// reported in the Report and do not stop the others.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths ...string) (*WordBank, Report) {
	wb := a.NewBank()
	report := a.Scanner("").ProcessFiles(ctx, paths, wb)
	a.observe(report)
	return wb, report
}

func (a *Analyzer) observe(report Report) {
	if a.config.Metrics != nil {
		a.config.Metrics.ObserveFiles(report.Results...)
	}
}

// Logger returns the analyzer's logger.
func (a *Analyzer) Logger() ports.Logger {
	return a.logger
}

// Normalizer returns the normalizer used by the analyzer's word banks.
func (a *Analyzer) Normalizer() ports.Normalizer {
	return a.normalizer
}

// Close flushes the analyzer's logger.
func (a *Analyzer) Close() error {
	return a.logger.Close()
}

// TopWords counts text with the default configuration and returns the top words.
// Logging is disabled.
func TopWords(text string, maxEntries int) (TopList, error) {
	a, err := New(WithMaxEntries(maxEntries), WithSilentLogging())
	if err != nil {
		return nil, err
	}
	wb, err := a.AnalyzeText(context.Background(), text)
	if err != nil {
		return nil, err
	}
	return wb.TopWords(), nil
}

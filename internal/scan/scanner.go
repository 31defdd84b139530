// Package scan finds text files in a data directory and feeds them into a
// word sink, reporting one outcome per file.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_word_frequency/internal/adapters/source"
	"github.com/baditaflorin/go_word_frequency/internal/core/domain"
	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

// DefaultExtension is the file extension scanned when none is configured.
const DefaultExtension = ".txt"

var (
	// ErrNoFiles is returned when the data directory holds no matching files.
	ErrNoFiles = errors.New("scan: no files found to analyze")
	// ErrNotFound is returned when a requested file is not part of the data directory.
	ErrNotFound = errors.New("scan: file not found")
)

// ProgressFunc is called with the file name before a file is processed.
// In parallel mode it may be called from several goroutines.
type ProgressFunc func(name string)

// Scanner lists and processes the files of one directory.
type Scanner struct {
	dir       string
	extension string
	workers   int
	reader    *source.Reader
	logger    ports.Logger
	progress  ProgressFunc
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExtension sets the file extension to scan, for example ".txt".
func WithExtension(ext string) Option {
	return func(s *Scanner) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extension = strings.ToLower(ext)
	}
}

// WithParallel processes up to workers files at once. Values below 2 keep
// the sequential behavior.
func WithParallel(workers int) Option {
	return func(s *Scanner) {
		s.workers = workers
	}
}

// WithProgress registers a callback invoked before each file.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Scanner) {
		s.progress = fn
	}
}

// New creates a Scanner for dir.
func New(dir string, reader *source.Reader, logger ports.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		dir:       dir,
		extension: DefaultExtension,
		workers:   1,
		reader:    reader,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the scanned directory.
func (s *Scanner) Dir() string {
	return s.dir
}

// List returns the matching files below the directory, sorted by path.
func (s *Scanner) List() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) == s.extension {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Resolve finds a listed file by base name or by path.
func (s *Scanner) Resolve(name string) (string, error) {
	paths, err := s.List()
	if err != nil {
		return "", err
	}
	for _, p := range paths {
		if p == name || filepath.Base(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// ProcessAll feeds every listed file into sink.
func (s *Scanner) ProcessAll(ctx context.Context, sink ports.WordSink) (Report, error) {
	paths, err := s.List()
	if err != nil {
		return Report{}, err
	}
	if len(paths) == 0 {
		return Report{}, ErrNoFiles
	}
	return s.ProcessFiles(ctx, paths, sink), nil
}

// ProcessFiles feeds the given files into sink. A failing file never stops
// the others; its error is kept in its result.
func (s *Scanner) ProcessFiles(ctx context.Context, paths []string, sink ports.WordSink) Report {
	results := make([]domain.FileResult, len(paths))

	if s.workers < 2 || len(paths) < 2 {
		for i, path := range paths {
			results[i] = s.processOne(ctx, path, sink)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for i, path := range paths {
			g.Go(func() error {
				results[i] = s.processOne(ctx, path, sink)
				return nil
			})
		}
		_ = g.Wait()
	}

	report := Report{Results: results}
	s.logger.Info("Scan completed",
		"dir", s.dir,
		"files", len(paths),
		"processed", report.Processed(),
		"failed", report.Failed(),
		"workers", s.workers,
	)
	return report
}

func (s *Scanner) processOne(ctx context.Context, path string, sink ports.WordSink) domain.FileResult {
	if s.progress != nil {
		s.progress(filepath.Base(path))
	}
	return s.reader.FeedFile(ctx, path, sink)
}

// Report collects the per-file outcomes of a scan, in input order.
type Report struct {
	Results []domain.FileResult
}

// Processed returns the number of files read successfully.
func (r Report) Processed() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be read.
func (r Report) Failed() int {
	return len(r.Results) - r.Processed()
}

// Failures returns the failed results.
func (r Report) Failures() []domain.FileResult {
	var failed []domain.FileResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Any reports whether at least one file was processed successfully.
func (r Report) Any() bool {
	return r.Processed() > 0
}

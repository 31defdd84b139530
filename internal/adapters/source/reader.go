// Package source feeds text from readers and files into a word sink.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/baditaflorin/go_word_frequency/internal/adapters/stream/lineprocessor"
	"github.com/baditaflorin/go_word_frequency/internal/core/domain"
	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

// Encoding names reported in results.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// Stats summarizes what was read from one input.
type Stats struct {
	Lines    int
	Tokens   int
	Bytes    int64
	Encoding string
}

// Reader splits text into raw tokens and hands them to a ports.WordSink.
// Lines that are not valid UTF-8 are decoded with a fallback charset.
type Reader struct {
	logger       ports.Logger
	processor    *lineprocessor.Processor
	fallback     encoding.Encoding
	fallbackName string
}

// Option configures a Reader.
type Option func(*readerConfig)

type readerConfig struct {
	chunkSize    int
	fallback     encoding.Encoding
	fallbackName string
}

// WithChunkSize sets the read size used by the line processor.
func WithChunkSize(size int) Option {
	return func(cfg *readerConfig) {
		cfg.chunkSize = size
	}
}

// WithFallbackEncoding sets the charset used for lines that are not valid UTF-8.
// name is reported in results for inputs that needed it.
func WithFallbackEncoding(name string, enc encoding.Encoding) Option {
	return func(cfg *readerConfig) {
		cfg.fallbackName = name
		cfg.fallback = enc
	}
}

// NewReader creates a Reader. Latin-1 is the default fallback charset.
func NewReader(logger ports.Logger, opts ...Option) *Reader {
	cfg := &readerConfig{
		chunkSize:    lineprocessor.DefaultChunkSize,
		fallback:     charmap.ISO8859_1,
		fallbackName: EncodingLatin1,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Reader{
		logger:       logger,
		processor:    lineprocessor.NewProcessor(logger, lineprocessor.ProcessingConfig{ChunkSize: cfg.chunkSize}),
		fallback:     cfg.fallback,
		fallbackName: cfg.fallbackName,
	}
}

// Feed reads r line by line and adds every whitespace-delimited token to sink.
func (r *Reader) Feed(ctx context.Context, in io.Reader, sink ports.WordSink) (Stats, error) {
	stats := Stats{Encoding: EncodingUTF8}
	decoder := r.fallback.NewDecoder()
	var decodeErr error
	lineNo := 0

	lineStats, err := r.processor.ProcessLines(ctx, in, func(line []byte) {
		lineNo++
		if len(line) == 0 {
			return
		}
		if !utf8.Valid(line) {
			decoded, err := decoder.Bytes(line)
			if err != nil {
				if decodeErr == nil {
					decodeErr = fmt.Errorf("decode line %d: %w", lineNo, err)
				}
				return
			}
			line = decoded
			stats.Encoding = r.fallbackName
		}
		tokens := splitFields(line)
		stats.Tokens += len(tokens)
		sink.AddWords(tokens...)
	})
	stats.Lines = lineStats.Lines
	stats.Bytes = lineStats.Bytes
	if err != nil {
		return stats, err
	}
	return stats, decodeErr
}

// FeedFile opens path and feeds its content into sink. Failures are reported
// in the returned result, never by panicking.
func (r *Reader) FeedFile(ctx context.Context, path string, sink ports.WordSink) domain.FileResult {
	result := domain.FileResult{
		Path: path,
		Name: filepath.Base(path),
	}

	f, err := os.Open(path)
	if err != nil {
		result.Err = fmt.Errorf("open %s: %w", result.Name, err)
		r.logger.Warn("Failed to open input file", "path", path, "error", err)
		return result
	}
	defer f.Close()

	stats, err := r.Feed(ctx, f, sink)
	result.Tokens = stats.Tokens
	result.Bytes = stats.Bytes
	result.Encoding = stats.Encoding
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", result.Name, err)
		r.logger.Warn("Failed to read input file", "path", path, "error", err)
		return result
	}

	r.logger.Debug("Processed input file",
		"path", path,
		"lines", stats.Lines,
		"tokens", stats.Tokens,
		"bytes", stats.Bytes,
		"encoding", stats.Encoding,
	)
	return result
}

// splitFields splits a line around Unicode whitespace.
func splitFields(line []byte) []string {
	fields := bytes.Fields(line)
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = string(f)
	}
	return tokens
}

package lineprocessor

import (
	"context"
	"io"
	"time"

	"github.com/baditaflorin/go_word_frequency/internal/pool"
	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

// Constants for line processing
const (
	// DefaultChunkSize defines the default size of each chunk for reading
	DefaultChunkSize = 64 * 1024 // 64KB

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 16 // chunks

	// Common newline characters
	CR = '\r'
	LF = '\n'
)

// LineHandler receives one line without its terminator.
// The slice is only valid for the duration of the call.
type LineHandler func(line []byte)

// Stats summarizes a processing run.
type Stats struct {
	Lines int
	Bytes int64
}

// ProcessingConfig defines configuration for line processing
type ProcessingConfig struct {
	ChunkSize int
}

// Processor splits a reader into lines, accepting LF, CRLF and CR terminators.
type Processor struct {
	logger    ports.Logger
	chunkPool *pool.ChunkPool
	linePool  *pool.BufferPool
	chunkSize int
}

// NewProcessor creates a new line processor
func NewProcessor(logger ports.Logger, config ProcessingConfig) *Processor {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}

	return &Processor{
		logger:    logger,
		chunkPool: pool.NewChunkPool(config.ChunkSize),
		linePool:  pool.NewBufferPool(256),
		chunkSize: config.ChunkSize,
	}
}

// ChunkSize returns the read size used by the processor.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// ProcessLines reads the input chunk by chunk and calls handle for every line.
func (p *Processor) ProcessLines(ctx context.Context, reader io.Reader, handle LineHandler) (Stats, error) {
	startTime := time.Now()

	chunk := p.chunkPool.Get()
	defer p.chunkPool.Put(chunk)

	// Holds a line that spans chunk boundaries
	carry := p.linePool.Get()
	defer p.linePool.Put(carry)

	var stats Stats
	pendingCR := false
	contextCheckCounter := 0

	emit := func(segment []byte) {
		stats.Lines++
		if len(*carry) > 0 {
			*carry = append(*carry, segment...)
			handle(*carry)
			*carry = (*carry)[:0]
			return
		}
		handle(segment)
	}

	for {
		if contextCheckCounter%ContextCheckFrequency == 0 {
			select {
			case <-ctx.Done():
				p.logger.Warn("Line processing cancelled by context", "error", ctx.Err())
				return stats, ctx.Err()
			default:
			}
		}
		contextCheckCounter++

		n, err := reader.Read(*chunk)
		if n > 0 {
			stats.Bytes += int64(n)
			data := (*chunk)[:n]
			lineStart := 0

			for i := 0; i < n; i++ {
				b := data[i]
				if pendingCR {
					pendingCR = false
					// LF completing a CRLF whose CR already ended the line
					if b == LF {
						lineStart = i + 1
						continue
					}
				}
				if b != LF && b != CR {
					continue
				}
				emit(data[lineStart:i])
				lineStart = i + 1
				pendingCR = b == CR
			}

			if lineStart < n {
				*carry = append(*carry, data[lineStart:]...)
			}
		}

		if err != nil {
			if err != io.EOF {
				p.logger.Warn("Error reading from input", "error", err)
				return stats, err
			}
			if len(*carry) > 0 {
				emit(nil)
			}
			break
		}
	}

	p.logger.Debug("Line processing completed",
		"lines", stats.Lines,
		"bytes_processed", stats.Bytes,
		"duration", time.Since(startTime),
	)

	return stats, nil
}

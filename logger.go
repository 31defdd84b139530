// logger.go
package wordfrequency

import (
	"os"

	"github.com/baditaflorin/go_word_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

// createDefaultLogger creates and returns a default logger instance writing text to stderr.
func createDefaultLogger() (ports.Logger, error) {
	return logger.NewCustomStdLogger(logger.DefaultConfig(os.Stderr, false))
}

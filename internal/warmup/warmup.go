package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Approximate size in bytes of the generated sample text
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     1000,
		SampleTextSize: 1000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// RankerFactory returns a fresh, empty ranker.
type RankerFactory func() ports.Ranker

// Stats reports how much work a warmup run did.
type Stats struct {
	Sanitized int64
	Ranked    int64
	Duration  time.Duration
}

// Manager fills the buffer pools of normalizers and word banks before the
// first real request arrives.
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	rankers     []RankerFactory
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// RegisterRanker adds a ranker factory to be warmed up
func (wm *Manager) RegisterRanker(factory RankerFactory) {
	wm.rankers = append(wm.rankers, factory)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) Stats {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.normalizers)+len(wm.rankers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	tokens := strings.Fields(generateSampleText(wm.config.SampleTextSize))

	var stats Stats
	stats.Sanitized = wm.warmUpNormalizers(warmupCtx, tokens)
	stats.Ranked = wm.warmUpRankers(warmupCtx, tokens)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	stats.Duration = time.Since(startTime)
	wm.logger.Info("System warmup completed",
		"sanitized", stats.Sanitized,
		"ranked", stats.Ranked,
		"duration", stats.Duration,
	)
	return stats
}

// warmUpNormalizers sanitizes every sample token with each normalizer
func (wm *Manager) warmUpNormalizers(ctx context.Context, tokens []string) int64 {
	if len(wm.normalizers) == 0 {
		return 0
	}
	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	return wm.run(ctx, wm.config.Iterations, func() {
		for _, n := range wm.normalizers {
			for _, tok := range tokens {
				w := n.Sanitize(tok)
				_ = n.HasAlnum(w) && n.Printable(w)
			}
		}
	})
}

// warmUpRankers fills fresh rankers with the sample tokens and ranks them
func (wm *Manager) warmUpRankers(ctx context.Context, tokens []string) int64 {
	if len(wm.rankers) == 0 {
		return 0
	}
	wm.logger.Debug("Warming up rankers", "count", len(wm.rankers))

	// Ranking allocates a full copy, so it gets fewer rounds
	return wm.run(ctx, wm.config.Iterations/10, func() {
		for _, factory := range wm.rankers {
			r := factory()
			r.AddWords(tokens...)
			_ = r.TopWords()
		}
	})
}

// run calls round up to iterations times on each routine and returns the
// number of completed rounds.
func (wm *Manager) run(ctx context.Context, iterations int, round func()) int64 {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int64
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var done int64
			for j := 0; j < iterations && ctx.Err() == nil; j++ {
				round()
				done++
			}
			mu.Lock()
			completed += done
			mu.Unlock()
		}()
	}
	wg.Wait()
	return completed
}

// generateSampleText creates sample text of roughly the specified size,
// mixing case, punctuation and stopwords the way real input does.
func generateSampleText(size int) string {
	words := []string{
		"The", "quick,", "brown", "fox", "jumps", "over", "the", "lazy", "dog.",
		"Hello", "world!", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
		"adipiscing", "elit;", "sed", "do", "eiusmod", "tempor", "incididunt",
		"ut", "labore", "et", "dolore", "magna", "aliqua", "don't", "well-known",
		"Each", "CAFÉ", "\"quoted\"",
	}

	var sb strings.Builder
	wordsNeeded := size / 5 // Assuming average word length of 5

	for i := 0; i < wordsNeeded; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}
	return sb.String()
}

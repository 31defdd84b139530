// Package wordbank counts sanitized words and ranks them by frequency.
//
// Words enter as raw whitespace-delimited tokens. Each token is sanitized by a
// ports.Normalizer, then rejected silently when it is empty, a stopword, has
// no letter or digit, or contains an unprintable rune. Accepted words are
// counted, and TopWords returns the most frequent ones.
//
// Ranking is by count descending. Equal counts keep first-seen order, which
// is a property of the insertion-ordered table rather than a total order on
// words.
//
// A WordBank is safe for concurrent use; every mutation holds one lock.
package wordbank

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/baditaflorin/go_word_frequency/internal/core/domain"
	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

// DefaultMaxEntries is the number of words reported when not configured.
const DefaultMaxEntries = 10

// Config holds configuration for a WordBank.
type Config struct {
	MaxEntries int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEntries: DefaultMaxEntries,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxEntries <= 0 {
		return errors.New("maxEntries must be greater than 0")
	}
	return nil
}

// WordBank accumulates word counts and exposes a ranked view.
type WordBank struct {
	config     Config
	stopwords  StopwordSet
	normalizer ports.Normalizer
	logger     ports.Logger

	mu      sync.Mutex
	index   map[string]int // word -> position in entries
	entries []domain.RankedEntry
	total   int
	empty   bool
}

// New creates an empty WordBank.
func New(config Config, stopwords StopwordSet, normalizer ports.Normalizer, logger ports.Logger) (*WordBank, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if normalizer == nil {
		return nil, errors.New("normalizer is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &WordBank{
		config:     config,
		stopwords:  stopwords.sanitizedWith(normalizer),
		normalizer: normalizer,
		logger:     logger,
		index:      make(map[string]int),
		empty:      true,
	}, nil
}

// Sanitize returns the canonical comparison form of raw.
func (wb *WordBank) Sanitize(raw string) string {
	return wb.normalizer.Sanitize(raw)
}

// IsEligible reports whether a sanitized word may be counted.
func (wb *WordBank) IsEligible(word string) bool {
	if word == "" {
		return false
	}
	if wb.stopwords.Contains(word) {
		return false
	}
	// Apostrophes and hyphens survive sanitizing, so "--" or "'" would
	// otherwise count as words.
	if !wb.normalizer.HasAlnum(word) {
		return false
	}
	return wb.normalizer.Printable(word)
}

// AddWord sanitizes raw and counts it when eligible. Ineligible input is ignored.
func (wb *WordBank) AddWord(raw string) {
	word := wb.normalizer.Sanitize(raw)
	if !wb.IsEligible(word) {
		return
	}

	wb.mu.Lock()
	wb.add(word)
	wb.mu.Unlock()
}

// AddWords adds each raw token in order.
func (wb *WordBank) AddWords(raw ...string) {
	if len(raw) == 0 {
		return
	}

	words := make([]string, 0, len(raw))
	for _, r := range raw {
		word := wb.normalizer.Sanitize(r)
		if wb.IsEligible(word) {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return
	}

	wb.mu.Lock()
	for _, word := range words {
		wb.add(word)
	}
	wb.mu.Unlock()
}

// add expects wb.mu to be held.
func (wb *WordBank) add(word string) {
	if i, ok := wb.index[word]; ok {
		wb.entries[i].Count++
	} else {
		wb.index[word] = len(wb.entries)
		wb.entries = append(wb.entries, domain.RankedEntry{Word: word, Count: 1})
	}
	wb.total++
	wb.empty = false
}

// TopWords returns up to MaxEntries words by count descending.
func (wb *WordBank) TopWords() domain.TopList {
	wb.mu.Lock()
	ranked := slices.Clone(wb.entries)
	wb.mu.Unlock()
	distinct := len(ranked)

	slices.SortStableFunc(ranked, func(a, b domain.RankedEntry) int {
		return b.Count - a.Count
	})
	if len(ranked) > wb.config.MaxEntries {
		ranked = ranked[:wb.config.MaxEntries]
	}

	wb.logger.Debug("Ranked top words",
		"distinct", distinct,
		"returned", len(ranked),
	)

	if ranked == nil {
		return domain.TopList{}
	}
	return domain.TopList(ranked)
}

// IsEmpty reports whether no word has been accepted yet.
func (wb *WordBank) IsEmpty() bool {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return wb.empty
}

// Count returns the number of times raw was counted, after sanitizing it.
func (wb *WordBank) Count(raw string) int {
	word := wb.normalizer.Sanitize(raw)

	wb.mu.Lock()
	defer wb.mu.Unlock()
	if i, ok := wb.index[word]; ok {
		return wb.entries[i].Count
	}
	return 0
}

// Len returns the number of distinct words counted.
func (wb *WordBank) Len() int {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return len(wb.entries)
}

// Total returns the number of accepted tokens.
func (wb *WordBank) Total() int {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return wb.total
}

// MaxEntries returns the configured size limit of TopWords.
func (wb *WordBank) MaxEntries() int {
	return wb.config.MaxEntries
}

// Title returns the header shown above rendered results.
func (wb *WordBank) Title() string {
	return fmt.Sprintf("--Top %d Words--", wb.config.MaxEntries)
}

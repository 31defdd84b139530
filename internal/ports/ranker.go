package ports

import "github.com/baditaflorin/go_word_frequency/internal/core/domain"

// WordSink accepts raw tokens for counting.
type WordSink interface {
	AddWord(raw string)
	AddWords(raw ...string)
}

// Ranker is a WordSink that can report its most frequent words.
type Ranker interface {
	WordSink
	TopWords() domain.TopList
	IsEmpty() bool
	Title() string
}

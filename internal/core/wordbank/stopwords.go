package wordbank

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

// Exempt lists words that are never treated as stopwords, whatever the source list says.
var Exempt = []string{"each"}

//go:embed english.txt
var englishList string

// StopwordSet is an immutable set of words excluded from counting.
// The zero value is an empty set.
type StopwordSet struct {
	words mapset.Set[string]
}

// NewStopwordSet builds a set from words. Entries are trimmed and lower-cased,
// blank entries are skipped, and exempt words are removed.
func NewStopwordSet(words ...string) StopwordSet {
	set := mapset.NewThreadUnsafeSetWithSize[string](len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set.Add(w)
	}
	for _, w := range Exempt {
		set.Remove(w)
	}
	return StopwordSet{words: set}
}

// EnglishStopwords returns the built-in English stopword list.
func EnglishStopwords() StopwordSet {
	return NewStopwordSet(strings.Split(englishList, "\n")...)
}

// ReadStopwords builds a set from newline-delimited words.
// Lines starting with '#' are comments.
func ReadStopwords(r io.Reader) (StopwordSet, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return StopwordSet{}, fmt.Errorf("read stopwords: %w", err)
	}
	return NewStopwordSet(words...), nil
}

// LoadStopwordsFile reads a stopword list from path.
func LoadStopwordsFile(path string) (StopwordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return StopwordSet{}, fmt.Errorf("open stopwords file: %w", err)
	}
	defer f.Close()
	return ReadStopwords(f)
}

// Contains reports whether word is a stopword.
func (s StopwordSet) Contains(word string) bool {
	if s.words == nil {
		return false
	}
	return s.words.Contains(word)
}

// sanitizedWith rewrites every entry into the form n.Sanitize gives counted
// words, so a list entry such as "the," still matches "The".
func (s StopwordSet) sanitizedWith(n ports.Normalizer) StopwordSet {
	if s.words == nil {
		return s
	}
	entries := s.words.ToSlice()
	for i, w := range entries {
		entries[i] = n.Sanitize(w)
	}
	return NewStopwordSet(entries...)
}

// Len returns the number of stopwords.
func (s StopwordSet) Len() int {
	if s.words == nil {
		return 0
	}
	return s.words.Cardinality()
}

package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

// StrippedPunctuation lists the ASCII punctuation removed from tokens.
// Apostrophe and hyphen are absent so contractions and compounds survive.
const StrippedPunctuation = "!\"#$%&()*+,./:;<=>?@[\\]^_`{|}~"

// DefaultNormalizer implements the default sanitizing strategy.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Sanitize removes stripped punctuation anywhere in the token and lower-cases the rest.
func (n *DefaultNormalizer) Sanitize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r < 128 && strings.ContainsRune(StrippedPunctuation, r) {
			return -1
		}
		return unicode.ToLower(r)
	}, raw)
}

// Printable reports whether every rune in word is printable.
func (n *DefaultNormalizer) Printable(word string) bool {
	return printable(word)
}

// HasAlnum reports whether word contains a letter or a digit.
func (n *DefaultNormalizer) HasAlnum(word string) bool {
	return hasAlnum(word)
}

func hasAlnum(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

func printable(word string) bool {
	for _, r := range word {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

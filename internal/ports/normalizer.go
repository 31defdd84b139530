package ports

// Normalizer defines the interface for turning raw tokens into countable words.
type Normalizer interface {
	// Sanitize strips punctuation (except apostrophe and hyphen) and lower-cases the token.
	Sanitize(raw string) string
	// Printable reports whether every rune of the word is printable.
	Printable(word string) bool
	// HasAlnum reports whether the word contains at least one letter or digit.
	HasAlnum(word string) bool
}

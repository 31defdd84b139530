package normalizer

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

func normalizers() map[string]ports.Normalizer {
	return map[string]ports.Normalizer{
		"default":   NewDefaultNormalizer(),
		"optimized": NewOptimizedNormalizer(),
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "trailing exclamation", raw: "Hello!", want: "hello"},
		{name: "contraction keeps apostrophe", raw: "don't", want: "don't"},
		{name: "hyphenated compound", raw: "well-known", want: "well-known"},
		{name: "uppercase contraction", raw: "DON'T", want: "don't"},
		{name: "surrounding quotes", raw: "\"quoted\"", want: "quoted"},
		{name: "internal ellipsis removed", raw: "wait...what", want: "waitwhat"},
		{name: "only punctuation", raw: "?!.", want: ""},
		{name: "only apostrophe survives", raw: "'", want: "'"},
		{name: "empty", raw: "", want: ""},
		{name: "digits kept", raw: "1984,", want: "1984"},
		{name: "symbols removed", raw: "$5+tax", want: "5tax"},
		{name: "brackets and backtick", raw: "[`code`]", want: "code"},
		{name: "non-ascii lowered", raw: "CAFÉ.", want: "café"},
		{name: "diaeresis kept", raw: "Naïve", want: "naïve"},
		{name: "multi-hyphen compound", raw: "State-of-the-art.", want: "state-of-the-art"},
		{name: "unicode punctuation is not stripped", raw: "«Bonjour»", want: "«bonjour»"},
	}

	for name, n := range normalizers() {
		for _, tc := range tests {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				if got := n.Sanitize(tc.raw); got != tc.want {
					t.Errorf("Sanitize(%q) = %q, want %q", tc.raw, got, tc.want)
				}
			})
		}
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{word: "hello", want: true},
		{word: "café", want: true},
		{word: "two words", want: true},
		{word: "tab\there", want: false},
		{word: "bell\a", want: false},
		{word: "del\x7f", want: false},
		{word: "zero​width", want: false},
		{word: "", want: true},
	}

	for name, n := range normalizers() {
		for _, tc := range tests {
			if got := n.Printable(tc.word); got != tc.want {
				t.Errorf("%s: Printable(%q) = %v, want %v", name, tc.word, got, tc.want)
			}
		}
	}
}

func TestHasAlnum(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{word: "hello", want: true},
		{word: "1984", want: true},
		{word: "don't", want: true},
		{word: "-x-", want: true},
		{word: "naïve", want: true},
		{word: "«é»", want: true},
		{word: "--", want: false},
		{word: "'", want: false},
		{word: "-'-", want: false},
		{word: "«»", want: false},
		{word: "", want: false},
	}

	for name, n := range normalizers() {
		for _, tc := range tests {
			if got := n.HasAlnum(tc.word); got != tc.want {
				t.Errorf("%s: HasAlnum(%q) = %v, want %v", name, tc.word, got, tc.want)
			}
		}
	}
}

func TestOptimizedReturnsCleanInputUnchanged(t *testing.T) {
	n := NewOptimizedNormalizer()
	if got := n.Sanitize("already-clean"); got != "already-clean" {
		t.Errorf("Sanitize changed a clean token: %q", got)
	}
}

func TestFactory(t *testing.T) {
	f := NewNormalizerFactory()
	if _, ok := f.CreateNormalizer(OptimizedNormalizerType).(*OptimizedNormalizer); !ok {
		t.Error("expected an OptimizedNormalizer")
	}
	if _, ok := f.CreateNormalizer(DefaultNormalizerType).(*DefaultNormalizer); !ok {
		t.Error("expected a DefaultNormalizer")
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	for name, n := range normalizers() {
		t.Run(name, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				raw := rapid.String().Draw(t, "raw")
				once := n.Sanitize(raw)
				if twice := n.Sanitize(once); twice != once {
					t.Fatalf("Sanitize not idempotent: %q -> %q -> %q", raw, once, twice)
				}
			})
		})
	}
}

func TestNormalizersAgree(t *testing.T) {
	def := NewDefaultNormalizer()
	opt := NewOptimizedNormalizer()
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		if a, b := def.Sanitize(raw), opt.Sanitize(raw); a != b {
			t.Fatalf("Sanitize(%q): default %q, optimized %q", raw, a, b)
		}
		if a, b := def.Printable(raw), opt.Printable(raw); a != b {
			t.Fatalf("Printable(%q): default %v, optimized %v", raw, a, b)
		}
		if a, b := def.HasAlnum(raw), opt.HasAlnum(raw); a != b {
			t.Fatalf("HasAlnum(%q): default %v, optimized %v", raw, a, b)
		}
	})
}

func FuzzSanitize(f *testing.F) {
	f.Add("Hello!")
	f.Add("don't")
	f.Add("wait...what")
	f.Add("\xff\xfe")
	f.Add("ÉTÉ,")
	f.Add("")

	def := NewDefaultNormalizer()
	opt := NewOptimizedNormalizer()
	f.Fuzz(func(t *testing.T, raw string) {
		a := def.Sanitize(raw)
		b := opt.Sanitize(raw)
		if a != b {
			t.Errorf("mismatch for %q: default %q, optimized %q", raw, a, b)
		}
		if again := opt.Sanitize(b); again != b {
			t.Errorf("not idempotent for %q: %q then %q", raw, b, again)
		}
		if def.HasAlnum(raw) != opt.HasAlnum(raw) {
			t.Errorf("HasAlnum mismatch for %q", raw)
		}
	})
}

package normalizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_word_frequency/internal/pool"
	"github.com/baditaflorin/go_word_frequency/internal/ports"
)

// ASCII actions for the precomputed table.
const (
	keepByte  byte = iota
	stripByte      // drop the byte
	lowerByte      // convert A-Z to a-z
)

// OptimizedNormalizer sanitizes tokens using a precomputed ASCII decision table
// and pooled buffers.
type OptimizedNormalizer struct {
	asciiTable [128]byte
	bytePool   *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(64),
	}
	for i := 0; i < 128; i++ {
		switch {
		case isStripped(byte(i)):
			n.asciiTable[i] = stripByte
		case 'A' <= i && i <= 'Z':
			n.asciiTable[i] = lowerByte
		default:
			n.asciiTable[i] = keepByte
		}
	}
	return n
}

func isStripped(b byte) bool {
	for i := 0; i < len(StrippedPunctuation); i++ {
		if StrippedPunctuation[i] == b {
			return true
		}
	}
	return false
}

// Sanitize removes stripped punctuation anywhere in the token and lower-cases the rest.
func (n *OptimizedNormalizer) Sanitize(raw string) string {
	if len(raw) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(raw); i++ {
		if raw[i] >= utf8.RuneSelf {
			asciiOnly = false
			break
		}
	}

	// Already-clean ASCII tokens are returned without copying.
	if asciiOnly {
		clean := true
		for i := 0; i < len(raw); i++ {
			if n.asciiTable[raw[i]] != keepByte {
				clean = false
				break
			}
		}
		if clean {
			return raw
		}
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(raw) {
		*buffer = make([]byte, 0, len(raw))
	}

	if asciiOnly {
		for i := 0; i < len(raw); i++ {
			b := raw[i]
			switch n.asciiTable[b] {
			case keepByte:
				*buffer = append(*buffer, b)
			case lowerByte:
				*buffer = append(*buffer, b+('a'-'A'))
			}
		}
		return string(*buffer)
	}

	for _, r := range raw {
		if r < utf8.RuneSelf {
			switch n.asciiTable[r] {
			case keepByte:
				*buffer = append(*buffer, byte(r))
			case lowerByte:
				*buffer = append(*buffer, byte(r)+('a'-'A'))
			}
			continue
		}
		*buffer = utf8.AppendRune(*buffer, unicode.ToLower(r))
	}
	return string(*buffer)
}

// Printable reports whether every rune in word is printable.
func (n *OptimizedNormalizer) Printable(word string) bool {
	for i := 0; i < len(word); i++ {
		b := word[i]
		if b >= utf8.RuneSelf {
			return printable(word)
		}
		if b < 0x20 || b == 0x7f {
			return false
		}
	}
	return true
}

// HasAlnum reports whether word contains a letter or a digit.
func (n *OptimizedNormalizer) HasAlnum(word string) bool {
	for i := 0; i < len(word); i++ {
		b := word[i]
		if b >= utf8.RuneSelf {
			return hasAlnum(word[i:])
		}
		if ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9') {
			return true
		}
	}
	return false
}

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType is the straightforward rune-mapping normalizer
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses a precomputed ASCII table and buffer pooling
	OptimizedNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}

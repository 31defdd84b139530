package benchmark

import (
	"context"
	"fmt"
	"strings"
	"testing"

	wordfrequency "github.com/baditaflorin/go_word_frequency"
	"github.com/baditaflorin/go_word_frequency/internal/adapters/normalizer"
)

// generateText creates a text of the specified size by repeating a sample text
func generateText(size int) string {
	if size <= 0 {
		return ""
	}

	sample := "The quick brown fox jumps over the lazy dog. \"Don't\" stop, said the well-known fox; " +
		"EACH dog barked... Café owners sighed!\n"
	var sb strings.Builder
	sb.Grow(size)
	for sb.Len() < size {
		sb.WriteString(sample)
	}
	return sb.String()[:size]
}

// BenchmarkNormalizers compares the performance of the two normalizers
func BenchmarkNormalizers(b *testing.B) {
	tokens := strings.Fields(generateText(10000))
	factory := normalizer.NewNormalizerFactory()

	for _, tc := range []struct {
		name string
		typ  normalizer.NormalizerType
	}{
		{"Default", normalizer.DefaultNormalizerType},
		{"Optimized", normalizer.OptimizedNormalizerType},
	} {
		n := factory.CreateNormalizer(tc.typ)
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for _, tok := range tokens {
					_ = n.Printable(n.Sanitize(tok))
				}
			}
		})
	}
}

// BenchmarkAnalyzeText measures the full pipeline for different input sizes
func BenchmarkAnalyzeText(b *testing.B) {
	for _, size := range []int{100, 10000, 1000000} {
		text := generateText(size)
		for _, opt := range []struct {
			name string
			opt  wordfrequency.Option
		}{
			{"Default", wordfrequency.WithDefaultNormalizer()},
			{"Optimized", wordfrequency.WithOptimizedNormalizer()},
		} {
			a, err := wordfrequency.New(opt.opt, wordfrequency.WithSilentLogging())
			if err != nil {
				b.Fatal(err)
			}
			b.Run(fmt.Sprintf("%s/%dB", opt.name, size), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					wb, err := a.AnalyzeText(context.Background(), text)
					if err != nil {
						b.Fatal(err)
					}
					_ = wb.TopWords()
				}
			})
		}
	}
}

// BenchmarkChunkSizes measures how the read size affects streaming throughput
func BenchmarkChunkSizes(b *testing.B) {
	text := generateText(1000000)
	for _, chunk := range []int{512, 4096, 64 * 1024} {
		a, err := wordfrequency.New(wordfrequency.WithChunkSize(chunk), wordfrequency.WithSilentLogging())
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("%dB", chunk), func(b *testing.B) {
			b.SetBytes(int64(len(text)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := a.AnalyzeReader(context.Background(), strings.NewReader(text)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkConcurrentAdds measures lock contention on a shared bank
func BenchmarkConcurrentAdds(b *testing.B) {
	a, err := wordfrequency.New(wordfrequency.WithSilentLogging())
	if err != nil {
		b.Fatal(err)
	}
	tokens := strings.Fields(generateText(1000))
	wb := a.NewBank()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			wb.AddWords(tokens...)
		}
	})
}

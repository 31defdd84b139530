package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_word_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_word_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_word_frequency/internal/adapters/source"
	"github.com/baditaflorin/go_word_frequency/internal/core/wordbank"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newScanner(dir string, opts ...Option) *Scanner {
	lg := logger.NewNopLogger()
	return New(dir, source.NewReader(lg), lg, opts...)
}

func newBank(t *testing.T, maxEntries int) *wordbank.WordBank {
	t.Helper()
	wb, err := wordbank.New(wordbank.Config{MaxEntries: maxEntries}, wordbank.EnglishStopwords(),
		normalizer.NewOptimizedNormalizer(), logger.NewNopLogger())
	require.NoError(t, err)
	return wb
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.txt":       "b",
		"a.TXT":       "a",
		"notes.md":    "skip",
		"sub/c.txt":   "c",
		"sub/d.json":  "{}",
		"noextension": "skip",
	})

	paths, err := newScanner(dir).List()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.TXT"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.txt"),
	}, paths)

	paths, err = newScanner(dir, WithExtension("md")).List()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "notes.md")}, paths)
}

func TestListMissingDir(t *testing.T) {
	_, err := newScanner(filepath.Join(t.TempDir(), "nope")).List()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"story.txt": "once upon a time"})
	s := newScanner(dir)

	path, err := s.Resolve("story.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "story.txt"), path)

	path, err = s.Resolve(filepath.Join(dir, "story.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "story.txt"), path)

	_, err = s.Resolve("other.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProcessAllEmptyDir(t *testing.T) {
	wb := newBank(t, 10)
	_, err := newScanner(t.TempDir()).ProcessAll(context.Background(), wb)
	assert.ErrorIs(t, err, ErrNoFiles)
	assert.True(t, wb.IsEmpty())
}

func TestProcessAllAggregates(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"one.txt": "Fox fox hound",
		"two.txt": "fox, hound! badger",
	})

	wb := newBank(t, 10)
	report, err := newScanner(dir).ProcessAll(context.Background(), wb)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed())
	assert.Zero(t, report.Failed())
	assert.True(t, report.Any())
	assert.Equal(t, []string{"fox", "hound", "badger"}, wb.TopWords().Words())
	assert.Equal(t, 3, wb.Count("fox"))
}

func TestFailingFileDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"good.txt": "kept words"})

	for _, workers := range []int{1, 4} {
		wb := newBank(t, 10)
		paths := []string{filepath.Join(dir, "missing.txt"), filepath.Join(dir, "good.txt")}
		report := newScanner(dir, WithParallel(workers)).ProcessFiles(context.Background(), paths, wb)

		require.Len(t, report.Results, 2)
		assert.False(t, report.Results[0].OK())
		assert.True(t, report.Results[1].OK())
		assert.Equal(t, 1, report.Failed())
		assert.Len(t, report.Failures(), 1)
		assert.Equal(t, "missing.txt", report.Failures()[0].Name)
		assert.Equal(t, 1, wb.Count("kept"))
	}
}

func TestParallelMatchesSequentialCounts(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{}
	for i, text := range []string{
		"apple banana cherry apple",
		"banana banana durian",
		"cherry apple elderberry fig",
		"fig fig fig grape",
		"grape apple banana",
		"honeydew",
	} {
		files[string(rune('a'+i))+".txt"] = text
	}
	writeFiles(t, dir, files)

	seq := newBank(t, 20)
	_, err := newScanner(dir).ProcessAll(context.Background(), seq)
	require.NoError(t, err)

	par := newBank(t, 20)
	_, err = newScanner(dir, WithParallel(3)).ProcessAll(context.Background(), par)
	require.NoError(t, err)

	// Tie order depends on file interleaving, so compare counts only.
	counts := func(wb *wordbank.WordBank) map[string]int {
		m := map[string]int{}
		for _, e := range wb.TopWords() {
			m[e.Word] = e.Count
		}
		return m
	}
	assert.Equal(t, counts(seq), counts(par))
	assert.Equal(t, seq.Total(), par.Total())
}

func TestProgressCalledPerFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"x.txt": "x", "y.txt": "y", "z.txt": "z"})

	var (
		mu    sync.Mutex
		names []string
	)
	s := newScanner(dir, WithParallel(2), WithProgress(func(name string) {
		mu.Lock()
		names = append(names, name)
		mu.Unlock()
	}))
	_, err := s.ProcessAll(context.Background(), newBank(t, 10))
	require.NoError(t, err)

	sort.Strings(names)
	assert.Equal(t, []string{"x.txt", "y.txt", "z.txt"}, names)
}

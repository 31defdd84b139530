package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	wordfrequency "github.com/baditaflorin/go_word_frequency"
	"github.com/baditaflorin/go_word_frequency/internal/config"
	"github.com/baditaflorin/go_word_frequency/internal/render"
	"github.com/baditaflorin/l"
)

const (
	selectPrompt  = "Select a file to process (enter a number):"
	allFilesLabel = "All files in directory"
	againPrompt   = "Results complete. Run another analysis? [y/n]: "
)

// errNoSelection means the data directory is empty in interactive mode.
var errNoSelection = errors.New("no file found")

// app holds the state of one wordcount session.
type app struct {
	cfg        *config.Config
	logger     l.Logger
	in         *bufio.Reader
	out        io.Writer
	jsonOutput bool
}

func (a *app) newAnalyzer() (*wordfrequency.Analyzer, error) {
	opts := []wordfrequency.Option{
		wordfrequency.WithLogger(a.logger),
		wordfrequency.WithMaxEntries(a.cfg.Analysis.MaxEntries),
		wordfrequency.WithExtension(a.cfg.Scan.Extension),
		wordfrequency.WithParallel(a.cfg.Scan.Workers),
		wordfrequency.WithChunkSize(a.cfg.Scan.ChunkSize),
		wordfrequency.WithProgress(func(name string) {
			fmt.Fprintf(a.out, "Analyzing %.45s...\n", name)
		}),
	}
	if a.cfg.Analysis.StopwordsFile != "" {
		opts = append(opts, wordfrequency.WithStopwordsFile(a.cfg.Analysis.StopwordsFile))
	}
	if a.cfg.Analysis.Normalizer == config.NormalizerDefault {
		opts = append(opts, wordfrequency.WithDefaultNormalizer())
	}
	return wordfrequency.New(opts...)
}

// runOnce analyzes every file in the data directory a single time.
func (a *app) runOnce(ctx context.Context) error {
	analyzer, err := a.newAnalyzer()
	if err != nil {
		return err
	}
	wb, report, err := analyzer.AnalyzeDir(ctx, a.cfg.Scan.DataDir)
	if err != nil {
		return err
	}
	a.printFailures(report)
	if !report.Any() {
		return wordfrequency.ErrNoFiles
	}
	return a.printResults(wb, report)
}

// runInteractive repeats pick, analyze and print until the user declines.
func (a *app) runInteractive(ctx context.Context) error {
	for {
		again, err := a.interactiveRound(ctx)
		if errors.Is(err, errNoSelection) {
			fmt.Fprintln(a.out, "No file found!")
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// interactiveRound runs one selection and reports whether the user wants another.
func (a *app) interactiveRound(ctx context.Context) (bool, error) {
	analyzer, err := a.newAnalyzer()
	if err != nil {
		return false, err
	}
	scanner := analyzer.Scanner(a.cfg.Scan.DataDir)

	paths, err := scanner.List()
	if err != nil {
		return false, err
	}
	if len(paths) == 0 {
		return false, errNoSelection
	}

	selected, err := a.pick(paths)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	wb, report := analyzer.AnalyzeFiles(ctx, selected...)
	a.printFailures(report)

	fmt.Fprint(a.out, "\n\n")
	if err := a.printResults(wb, report); err != nil {
		return false, err
	}
	return a.confirm(againPrompt)
}

// pick shows the numbered file list and returns the chosen files.
func (a *app) pick(paths []string) ([]string, error) {
	for {
		fmt.Fprintln(a.out, selectPrompt)
		for i, p := range paths {
			fmt.Fprintln(a.out, formatLabel(i+1, filepath.Base(p)))
		}
		fmt.Fprintln(a.out, formatLabel(len(paths)+1, allFilesLabel))

		line, err := a.readLine()
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(line)
		switch {
		case convErr != nil || n < 1 || n > len(paths)+1:
			fmt.Fprintf(a.out, "Invalid selection: %q\n", line)
		case n == len(paths)+1:
			return paths, nil
		default:
			return paths[n-1 : n], nil
		}
	}
}

// confirm asks a yes/no question; anything other than y or yes is no.
func (a *app) confirm(prompt string) (bool, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine returns the next trimmed input line. A final line without a
// newline is returned before io.EOF.
func (a *app) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) printFailures(report wordfrequency.Report) {
	for _, f := range report.Failures() {
		fmt.Fprintf(a.out, "Error processing %s: %v\n", f.Name, f.Err)
	}
}

func (a *app) printResults(wb *wordfrequency.WordBank, report wordfrequency.Report) error {
	if a.jsonOutput {
		return render.JSON(a.out, render.NewDocument(wb.Title(), wb.TopWords(), wb.IsEmpty(), report.Results))
	}
	return render.Table(a.out, wb.Title(), wb.TopWords(), wb.IsEmpty())
}

func formatLabel(n int, name string) string {
	return fmt.Sprintf("%d. %.40s", n, name)
}

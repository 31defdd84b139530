// Command wordcount reports the most frequent words in the text files of a directory.
//
// By default it lists the files and lets the user pick one, or all of them,
// then prints the ranked words and asks whether to run another analysis.
// With -all it analyzes every file once and exits.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	wordfrequency "github.com/baditaflorin/go_word_frequency"
	"github.com/baditaflorin/go_word_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_word_frequency/internal/config"
	"github.com/baditaflorin/l"
)

// Command-line flags
var (
	configFile    string
	dataDir       string
	maxEntries    int
	workers       int
	stopwordsFile string
	analyzeAll    bool
	outputFormat  string
	logFile       string
	verbose       bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	flag.StringVar(&dataDir, "dir", "", "Directory holding the text files (overrides config)")
	flag.IntVar(&maxEntries, "top", 0, "Number of words to report (overrides config)")
	flag.IntVar(&workers, "workers", 0, "Files read in parallel when analyzing a whole directory (overrides config)")
	flag.StringVar(&stopwordsFile, "stopwords", "", "Newline-delimited stopword file (overrides config)")
	flag.BoolVar(&analyzeAll, "all", false, "Analyze every file once without prompting")
	flag.StringVar(&outputFormat, "output", "text", "Output format: 'text' or 'json'")
	flag.StringVar(&logFile, "log-file", "", "Write logs to this file instead of discarding them")
	flag.BoolVar(&verbose, "verbose", false, "Log to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=./sample_data\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=./sample_data --all --top=20 --workers=4\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --config=wordcount.yaml --all --output=json\n", os.Args[0])
	}
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintf(os.Stderr, "Error: invalid output format: %s. Must be 'text' or 'json'\n", outputFormat)
		os.Exit(1)
	}

	lg, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Close()

	a := &app{
		cfg:        cfg,
		logger:     lg,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		jsonOutput: outputFormat == "json",
	}

	if analyzeAll {
		err = a.runOnce(ctx)
	} else {
		err = a.runInteractive(ctx)
	}
	if err != nil {
		if errors.Is(err, wordfrequency.ErrNoFiles) {
			fmt.Fprintln(os.Stdout, "No files found to analyze!")
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Scan.DataDir = dataDir
	}
	if maxEntries != 0 {
		cfg.Analysis.MaxEntries = maxEntries
	}
	if workers != 0 {
		cfg.Scan.Workers = workers
	}
	if stopwordsFile != "" {
		cfg.Analysis.StopwordsFile = stopwordsFile
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	return cfg, cfg.Validate()
}

// createLogger returns a logger writing to the configured file, to stderr in
// verbose mode, or nowhere so that logs do not mix with the interactive prompt.
func createLogger(cfg *config.Config) (l.Logger, error) {
	var output io.Writer
	switch {
	case cfg.Log.File != "":
		file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	case verbose:
		output = os.Stderr
	default:
		output = io.Discard
	}

	lg, err := l.NewStandardFactory().CreateLogger(logger.DefaultConfig(output, cfg.Log.JSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return lg, nil
}

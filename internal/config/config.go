// Package config loads settings for the word frequency tools.
//
// Precedence: defaults, then the YAML file, then WORDCOUNT_* environment
// variables. Command-line flags are applied by the binaries afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WORDCOUNT"

// Normalizer names accepted by AnalysisConfig.Normalizer.
const (
	NormalizerDefault   = "default"
	NormalizerOptimized = "optimized"
)

// Config is the complete configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Scan     ScanConfig     `yaml:"scan"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// AnalysisConfig controls counting and ranking.
type AnalysisConfig struct {
	MaxEntries    int    `yaml:"max_entries"`
	StopwordsFile string `yaml:"stopwords_file"`
	Normalizer    string `yaml:"normalizer"`
}

// ScanConfig controls which files are read.
type ScanConfig struct {
	DataDir   string `yaml:"data_dir"`
	Extension string `yaml:"extension"`
	Workers   int    `yaml:"workers"`
	ChunkSize int    `yaml:"chunk_size"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxRequestSize int           `yaml:"max_request_size"`
}

// LogConfig controls logging output.
type LogConfig struct {
	File string `yaml:"file"`
	JSON bool   `yaml:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MaxEntries: 10,
			Normalizer: NormalizerOptimized,
		},
		Scan: ScanConfig{
			DataDir:   "./sample_data",
			Extension: ".txt",
			Workers:   1,
			ChunkSize: 64 * 1024,
		},
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxRequestSize: 10 * 1024 * 1024, // 10MB
		},
	}
}

// Load builds a Config from defaults, the optional YAML file at path and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays WORDCOUNT_* variables found by lookup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		return lookup(EnvPrefix + "_" + name)
	}

	var err error
	setInt := func(name string, dst *int) {
		if v, ok := get(name); ok && err == nil {
			n, convErr := strconv.Atoi(strings.TrimSpace(v))
			if convErr != nil {
				err = fmt.Errorf("env %s_%s: %w", EnvPrefix, name, convErr)
				return
			}
			*dst = n
		}
	}
	setString := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool) {
		if v, ok := get(name); ok && err == nil {
			b, convErr := strconv.ParseBool(strings.TrimSpace(v))
			if convErr != nil {
				err = fmt.Errorf("env %s_%s: %w", EnvPrefix, name, convErr)
				return
			}
			*dst = b
		}
	}
	setDuration := func(name string, dst *time.Duration) {
		if v, ok := get(name); ok && err == nil {
			d, convErr := time.ParseDuration(strings.TrimSpace(v))
			if convErr != nil {
				err = fmt.Errorf("env %s_%s: %w", EnvPrefix, name, convErr)
				return
			}
			*dst = d
		}
	}

	setInt("MAX_ENTRIES", &c.Analysis.MaxEntries)
	setString("STOPWORDS_FILE", &c.Analysis.StopwordsFile)
	setString("NORMALIZER", &c.Analysis.Normalizer)
	setString("DATA_DIR", &c.Scan.DataDir)
	setString("EXTENSION", &c.Scan.Extension)
	setInt("WORKERS", &c.Scan.Workers)
	setInt("CHUNK_SIZE", &c.Scan.ChunkSize)
	setInt("PORT", &c.Server.Port)
	setDuration("READ_TIMEOUT", &c.Server.ReadTimeout)
	setDuration("WRITE_TIMEOUT", &c.Server.WriteTimeout)
	setInt("MAX_REQUEST_SIZE", &c.Server.MaxRequestSize)
	setString("LOG_FILE", &c.Log.File)
	setBool("LOG_JSON", &c.Log.JSON)
	return err
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Analysis.MaxEntries <= 0 {
		errs = append(errs, errors.New("analysis.max_entries must be greater than 0"))
	}
	switch c.Analysis.Normalizer {
	case NormalizerDefault, NormalizerOptimized:
	default:
		errs = append(errs, fmt.Errorf("analysis.normalizer must be %q or %q, got %q",
			NormalizerDefault, NormalizerOptimized, c.Analysis.Normalizer))
	}
	if c.Scan.DataDir == "" {
		errs = append(errs, errors.New("scan.data_dir is required"))
	}
	if c.Scan.Workers < 1 {
		errs = append(errs, errors.New("scan.workers must be at least 1"))
	}
	if c.Scan.ChunkSize <= 0 {
		errs = append(errs, errors.New("scan.chunk_size must be greater than 0"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	return errors.Join(errs...)
}

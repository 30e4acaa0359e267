package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for a voterscan run.
type Config struct {
	// Input is the PDF file to convert, or a directory of PDFs to
	// convert sequentially. Empty means auto-detect in the working
	// directory.
	Input string

	// OutDir receives the CSV files; empty means alongside the input.
	OutDir string

	Version     string
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
// The PDF path may be given as --pdf or as the first positional argument.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.Input == "" && pflag.NArg() > 0 {
		cfg.Input = pflag.Arg(0)
	}

	if err := cfg.ResolveInput(); err != nil {
		return nil, err
	}

	if cfg.OutDir != "" {
		if expanded, err := filepath.Abs(cfg.OutDir); err == nil {
			cfg.OutDir = expanded
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("VOTERSCAN")
	viper.AutomaticEnv()

	viper.SetDefault("pdf", cfg.Input)
	viper.SetDefault("outdir", cfg.OutDir)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("pdf", cfg.Input, "Input PDF file or directory of PDFs")
	pflag.String("outdir", cfg.OutDir, "Output directory for CSV files (default: alongside input)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("pdf", pflag.Lookup("pdf"))
	_ = viper.BindPFlag("outdir", pflag.Lookup("outdir"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nvoterscan - Convert Bengali voter-roll PDFs to structured CSV\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                       # first PDF in the current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s 001.pdf               # one file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --pdf=rolls/ --outdir=out/   # every PDF in a directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  VOTERSCAN_PDF          Input PDF or directory\n")
		fmt.Fprintf(os.Stderr, "  VOTERSCAN_OUTDIR       Output directory\n")
		fmt.Fprintf(os.Stderr, "  VOTERSCAN_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  VOTERSCAN_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Input = viper.GetString("pdf")
	cfg.OutDir = viper.GetString("outdir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// ResolveInput auto-detects the input when no path was given: the
// lexicographically first PDF in the working directory, so repeated runs
// pick the same file.
func (c *Config) ResolveInput() error {
	if c.Input != "" {
		if expanded, err := filepath.Abs(c.Input); err == nil {
			c.Input = expanded
		}
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	first, err := FirstPDFIn(cwd)
	if err != nil {
		return err
	}
	c.Input = first
	return nil
}

// FirstPDFIn returns the lexicographically first PDF file in dir.
func FirstPDFIn(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	var pdfs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			pdfs = append(pdfs, e.Name())
		}
	}
	if len(pdfs) == 0 {
		return "", fmt.Errorf("no PDF files found in %s", dir)
	}
	sort.Strings(pdfs)
	return filepath.Join(dir, pdfs[0]), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.OutDir != "" {
		info, err := os.Stat(c.OutDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", c.OutDir)
		}
		if err != nil {
			return fmt.Errorf("cannot access output directory %s: %w", c.OutDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output path is not a directory: %s", c.OutDir)
		}
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsDirectory reports whether the resolved input is a directory of PDFs.
func (c *Config) IsDirectory() bool {
	info, err := os.Stat(c.Input)
	return err == nil && info.IsDir()
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Input: %s, OutDir: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Input, c.OutDir, c.LogLevel, c.MaxFileSize)
}

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/phuslu/log"

	"github.com/bdvoterdata/voterscan/internal/config"
	"github.com/bdvoterdata/voterscan/internal/pipeline"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures the global logger from the configured level.
func setupLogging(cfg *config.Config) {
	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(cfg.LogLevel),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput:    true,
			EndWithMessage: true,
		},
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Debug().Msg(cfg.String())
	}

	p := pipeline.New(pipeline.Options{
		OutDir:      cfg.OutDir,
		MaxFileSize: cfg.MaxFileSize,
	})

	if cfg.IsDirectory() {
		results, err := p.RunDir(cfg.Input)
		if err != nil {
			log.Error().Err(err).Msg("conversion finished with failures")
			os.Exit(1)
		}
		total := 0
		for _, res := range results {
			total += res.RecordCount
		}
		log.Info().Int("files", len(results)).Int("records", total).Msg("all files converted")
		return
	}

	result, err := p.Run(cfg.Input)
	if err != nil {
		log.Error().Err(err).Msg("conversion failed")
		os.Exit(1)
	}
	log.Info().
		Str("raw", result.RawCSV).
		Str("structured", result.StructuredCSV).
		Str("final", result.FinalCSV).
		Int("records", result.RecordCount).
		Msg("conversion complete")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("voterscan - Bengali voter-roll PDF to CSV converter\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}

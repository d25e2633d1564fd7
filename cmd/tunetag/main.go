package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tunetag/internal/config"
	"tunetag/internal/logger"
	"tunetag/internal/metadata"
	"tunetag/internal/pipeline"
	"tunetag/internal/shutdown"
	"tunetag/pkg/utils"
)

func main() {
	cfg, opts, configPath, err := parseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	sh := shutdown.New()
	sh.Listen()
	defer sh.Wait()

	log := logger.New(cfg.Verbose)
	defer log.Close()

	if !cfg.Verbose {
		logDir := config.GetDefaultLogPath()
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to create log directory: %v\n", err)
		} else {
			logFile := filepath.Join(logDir, fmt.Sprintf("tunetag_%s.log", time.Now().Format("2006-01-02_15-04-05")))
			if err := log.SetFileLog(logFile); err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
			} else {
				log.Debug("Logging to file: %s", logFile)
			}
		}
	}

	if cfg.Verbose && configPath != "" {
		log.Debug("Loaded configuration from: %s", configPath)
	}

	if err := cfg.Validate(); err != nil {
		log.Error("Configuration error: %v", err)
		os.Exit(1)
	}

	if err := run(sh, cfg, log, opts); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(sh *shutdown.Handler, cfg config.Config, log *logger.Logger, opts cliOptions) error {
	log.Debug("Checking dependencies...")
	if err := utils.CheckDependencies(); err != nil {
		return fmt.Errorf("dependency check failed: %w", err)
	}

	pipeOpts := pipeline.Options{
		URL:    opts.URL,
		Song:   opts.Song,
		Artist: opts.Artist,
		Album:  opts.Album,
	}

	if opts.List || cfg.DryRun {
		result, err := pipeline.Search(sh.Context(), cfg, log, pipeOpts)
		if err != nil {
			return describeSearchError(err)
		}
		if opts.List {
			printCandidates(result.Ranked)
		} else {
			printCandidates(result.Ranked[:1])
		}
		return nil
	}

	tmpDir, err := utils.CreateTempDir()
	if err != nil {
		return fmt.Errorf("error creating temporary folder: %w", err)
	}
	log.Debug("Temporary folder: %s", tmpDir)

	sh.AddCleanup(func() {
		log.Debug("Cleaning up...")
		if err := utils.Cleanup(tmpDir); err != nil {
			log.Warn("Error during cleanup: %v", err)
		}
	})

	result, err := pipeline.Run(sh.Context(), cfg, log, tmpDir, pipeOpts)
	if err != nil {
		return describeSearchError(err)
	}

	log.Info("=== Saved %q to %s ===", result.Best.Name, result.File)
	return nil
}

// describeSearchError turns the pipeline sentinels into actionable messages.
func describeSearchError(err error) error {
	switch {
	case errors.Is(err, metadata.ErrNoProviders):
		return fmt.Errorf("none of the configured providers are available, check metadata_providers in your config")
	case errors.Is(err, pipeline.ErrNoMatch):
		return fmt.Errorf("no matching metadata found, try --song to override the search title or lower --sensitivity")
	default:
		return err
	}
}

func printCandidates(tracks []metadata.Track) {
	for i, t := range tracks {
		date := t.ReleaseDate
		if date == "" {
			date = "unknown"
		}
		fmt.Printf("%2d. %s - %s\n    album: %s  released: %s  [%s]\n",
			i+1, t.Artist, t.Name, t.Album, date, t.Provider)
	}
}

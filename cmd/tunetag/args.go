package main

import (
	"fmt"
	"os"

	"tunetag/internal/config"
)

// cliOptions are the per-invocation options that never live in the config
// file.
type cliOptions struct {
	URL    string
	Artist string
	Album  string
	Song   string
	List   bool
}

// parseArgs parses command-line arguments and loads configuration.
// Priority: CLI flags > config file > defaults
func parseArgs() (config.Config, cliOptions, string, error) {
	args := os.Args[1:]
	var opts cliOptions

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		}
		if arg == "--init-config" {
			return config.Config{}, opts, "", initConfigFile()
		}
	}

	var configPath string
	var cfg config.Config
	var err error

	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--config requires a path argument")
			}
			configPath = args[i+1]
			break
		}
	}

	cfg, err = config.LoadConfigFile(configPath)
	if err != nil {
		return config.Config{}, opts, "", fmt.Errorf("failed to load config: %w", err)
	}
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--verbose", "-v":
			cfg.Verbose = true

		case "--dry-run", "-n":
			cfg.DryRun = true

		case "--list", "-l":
			opts.List = true

		case "--artist", "-a":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--artist requires a name argument")
			}
			i++
			opts.Artist = args[i]

		case "--album", "-A":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--album requires a name argument")
			}
			i++
			opts.Album = args[i]

		case "--song", "-s":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--song requires a title argument")
			}
			i++
			opts.Song = args[i]

		case "--sensitivity", "-S":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--sensitivity requires a number argument")
			}
			i++
			var sens float64
			if _, err := fmt.Sscanf(args[i], "%g", &sens); err != nil {
				return config.Config{}, opts, "", fmt.Errorf("invalid sensitivity value: %s", args[i])
			}
			cfg.SearchSensitivity = sens

		case "--browser", "-b":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--browser requires a browser name")
			}
			i++
			cfg.CookiesBrowser = args[i]

		case "--format", "-f":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--format requires a format name")
			}
			i++
			cfg.AudioFormat = args[i]

		case "--config", "-c":
			i++

		default:
			if len(arg) > 0 && arg[0] == '-' {
				return config.Config{}, opts, "", fmt.Errorf("unknown flag: %s", arg)
			}
			opts.URL = arg
		}
	}

	if opts.URL == "" {
		return config.Config{}, opts, "", fmt.Errorf("video URL is required")
	}

	return cfg, opts, configPath, nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  metadata_providers: itunes, deezer, musicbrainz, spotify")
	fmt.Println("  search_sensitivity: 0.0-1.0 (how strict title matching is)")
	fmt.Println("  cookies_browser: brave, chrome, firefox, etc.")
	fmt.Println("  audio_format: mp3, m4a, opus, flac, wav, aac")
	fmt.Println("  fetch_lyrics: true/false (embed lyrics from LRCLIB)")
	fmt.Println("  output_dir: where tagged files are filed")

	os.Exit(0)
	return nil
}

// printUsage displays the help message
func printUsage() {
	fmt.Println("tunetag - Download a song from YouTube, find its metadata and tag it")
	fmt.Println()
	fmt.Println("Usage: tunetag [options] <video_url>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose              Show detailed output")
	fmt.Println("  -n, --dry-run              Search and rank metadata without downloading")
	fmt.Println("  -l, --list                 List all ranked candidates instead of the best one")
	fmt.Println("  -a, --artist <name>        Only accept results by this artist")
	fmt.Println("  -A, --album <name>         Only accept results from this album")
	fmt.Println("  -s, --song <title>         Search with this title instead of the video title")
	fmt.Println("  -S, --sensitivity <n>      Minimum title similarity, 0.0-1.0 (default: 0.35)")
	fmt.Println("  -b, --browser <name>       Browser to extract cookies from")
	fmt.Println("  -f, --format <format>      Audio format: mp3, m4a, opus, flac, etc. (default: mp3)")
	fmt.Println("  -c, --config <path>        Path to config file")
	fmt.Println("  -h, --help                 Show this help message")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --init-config              Create a default config file")
	fmt.Println()
	fmt.Println("Config file locations (checked in order):")
	fmt.Println("  ./tunetag.yaml")
	fmt.Println("  ~/.config/tunetag/config.yaml")
	fmt.Println("  ~/.tunetag.yaml")
	fmt.Println()
	fmt.Println("Logging:")
	fmt.Println("  Normal mode: detailed logs saved to ~/.local/share/tunetag/logs/")
	fmt.Println("  Verbose mode: all output to stdout, no file logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Preview the metadata that would be used")
	fmt.Println("  tunetag --dry-run https://www.youtube.com/watch?v=...")
	fmt.Println()
	fmt.Println("  # Download, tag and file with defaults")
	fmt.Println("  tunetag https://www.youtube.com/watch?v=...")
	fmt.Println()
	fmt.Println("  # Pin the artist when the video title is ambiguous")
	fmt.Println("  tunetag -a \"Sub Urban\" https://www.youtube.com/watch?v=...")
	fmt.Println()
	fmt.Println("  # See every candidate the providers returned")
	fmt.Println("  tunetag --list https://www.youtube.com/watch?v=...")
	fmt.Println()
	fmt.Println("  # Create a config file to persist settings")
	fmt.Println("  tunetag --init-config")
}

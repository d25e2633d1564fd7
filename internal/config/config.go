package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config contains the program configuration.
type Config struct {
	MetadataProviders   []string `yaml:"metadata_providers"`
	SearchSensitivity   float64  `yaml:"search_sensitivity"`
	ItunesCountry       string   `yaml:"itunes_country"`
	SpotifyCountry      string   `yaml:"spotify_country"`
	SpotifyClientID     string   `yaml:"spotify_client_id"`
	SpotifyClientSecret string   `yaml:"spotify_client_secret"`
	AudioFormat         string   `yaml:"audio_format"`
	CookiesBrowser      string   `yaml:"cookies_browser"`
	FetchLyrics         bool     `yaml:"fetch_lyrics"`
	OutputDir           string   `yaml:"output_dir"`
	Verbose             bool     `yaml:"verbose"`
	DryRun              bool     `yaml:"dry_run"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MetadataProviders: []string{"itunes", "deezer", "musicbrainz"},
		SearchSensitivity: 0.35,
		ItunesCountry:     "us",
		SpotifyCountry:    "US",
		AudioFormat:       "mp3",
		FetchLyrics:       true,
		OutputDir:         filepath.Join(homeDir(), "Music"),
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no
// file is found.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.OutputDir = ExpandHome(cfg.OutputDir)

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// FindConfigFile searches for a config file in standard locations.
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./tunetag.yaml",
		"./tunetag.yml",
		filepath.Join(home, ".config", "tunetag", "config.yaml"),
		filepath.Join(home, ".config", "tunetag", "config.yml"),
		filepath.Join(home, ".tunetag.yaml"),
		filepath.Join(home, ".tunetag.yml"),
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the configuration to a YAML file.
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path.
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "tunetag", "config.yaml")
}

// GetDefaultLogPath returns the default log directory path.
func GetDefaultLogPath() string {
	return filepath.Join(homeDir(), ".local", "share", "tunetag", "logs")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

var validProviders = map[string]bool{
	"itunes":      true,
	"deezer":      true,
	"musicbrainz": true,
	"spotify":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.MetadataProviders) == 0 {
		return fmt.Errorf("metadata_providers cannot be empty")
	}
	for _, p := range c.MetadataProviders {
		if !validProviders[p] {
			return fmt.Errorf("unknown metadata provider %q, valid providers: itunes, deezer, musicbrainz, spotify", p)
		}
	}

	if c.SearchSensitivity < 0 || c.SearchSensitivity > 1 {
		return fmt.Errorf("search_sensitivity must be between 0.0 and 1.0, got %.2f", c.SearchSensitivity)
	}

	validFormats := []string{"mp3", "m4a", "opus", "flac", "wav", "aac"}
	isValid := false
	for _, format := range validFormats {
		if c.AudioFormat == format {
			isValid = true
			break
		}
	}
	if !isValid {
		return fmt.Errorf("unsupported audio format '%s', valid formats: %v", c.AudioFormat, validFormats)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	if c.hasProvider("spotify") {
		if c.SpotifyClientID == "" {
			return fmt.Errorf("spotify_client_id is required when spotify is in metadata_providers")
		}
		if c.SpotifyClientSecret == "" {
			return fmt.Errorf("spotify_client_secret is required when spotify is in metadata_providers")
		}
	}

	return nil
}

func (c *Config) hasProvider(name string) bool {
	for _, p := range c.MetadataProviders {
		if p == name {
			return true
		}
	}
	return false
}

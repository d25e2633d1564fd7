package downloader

import (
	"strings"
	"testing"

	"tunetag/internal/config"
	"tunetag/internal/logger"
)

func TestBuildYtdlpArgs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AudioFormat = "flac"
	d := New(cfg, logger.New(false), "/tmp/work")

	args := d.buildYtdlpArgs("https://youtube.com/watch?v=abc")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--audio-format flac") {
		t.Errorf("audio format not passed: %v", args)
	}
	if !strings.Contains(joined, "--no-playlist") {
		t.Errorf("single-video download must disable playlists: %v", args)
	}
	if args[len(args)-1] != "https://youtube.com/watch?v=abc" {
		t.Errorf("URL must come last, got %v", args)
	}
	if strings.Contains(joined, "--cookies-from-browser") {
		t.Errorf("cookies flag should be absent when not configured: %v", args)
	}
}

func TestBuildYtdlpArgsWithCookies(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CookiesBrowser = "firefox"
	d := New(cfg, logger.New(false), "/tmp/work")

	joined := strings.Join(d.buildYtdlpArgs("url"), " ")
	if !strings.Contains(joined, "--cookies-from-browser firefox") {
		t.Errorf("cookies browser not passed: %s", joined)
	}
}

package downloader

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tunetag/internal/config"
	"tunetag/internal/logger"
	"tunetag/pkg/utils"
)

// Downloader fetches a YouTube video's audio with yt-dlp.
type Downloader struct {
	Config config.Config
	Logger *logger.Logger
	TmpDir string
}

// VideoInfo is the probed metadata of a video, used to build the search
// query before anything is downloaded.
type VideoInfo struct {
	URL      string
	Title    string
	Uploader string
}

// New creates a new Downloader instance.
func New(cfg config.Config, log *logger.Logger, tmpDir string) *Downloader {
	return &Downloader{
		Config: cfg,
		Logger: log,
		TmpDir: tmpDir,
	}
}

// Probe fetches the video's title and uploader without downloading.
func (d *Downloader) Probe(ctx context.Context, url string) (VideoInfo, error) {
	d.Logger.Debug("Probing video: %s", url)

	cmd := exec.CommandContext(ctx, "yt-dlp",
		"--no-download",
		"--print", "%(title)s",
		"--print", "%(uploader)s",
		url,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return VideoInfo{}, fmt.Errorf("probe cancelled")
		}
		return VideoInfo{}, fmt.Errorf("yt-dlp failed to probe video: %w\nDetails: %s", err, stderr.String())
	}

	var lines []string
	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return VideoInfo{}, fmt.Errorf("error reading yt-dlp output: %w", err)
	}
	if len(lines) < 1 || lines[0] == "" {
		return VideoInfo{}, fmt.Errorf("yt-dlp returned no title for %s", url)
	}

	info := VideoInfo{URL: url, Title: lines[0]}
	if len(lines) > 1 && lines[1] != "NA" {
		info.Uploader = lines[1]
	}

	d.Logger.Debug("Probed: title=%q uploader=%q", info.Title, info.Uploader)
	return info, nil
}

// Download fetches the video's audio into the temp directory and returns
// the path of the extracted audio file.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	d.Logger.Info("=== Downloading audio ===")

	args := d.buildYtdlpArgs(url)
	cmd := exec.CommandContext(ctx, "yt-dlp", args...)

	if d.Config.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("download cancelled")
		}
		return "", fmt.Errorf("yt-dlp download failed: %w", err)
	}

	files, err := utils.FindAudioFiles(d.TmpDir)
	if err != nil {
		return "", fmt.Errorf("failed to locate downloaded audio: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no audio file produced - the video may be unavailable")
	}

	d.Logger.Debug("Downloaded: %s", files[0])
	return files[0], nil
}

// buildYtdlpArgs constructs command-line arguments for yt-dlp.
func (d *Downloader) buildYtdlpArgs(url string) []string {
	outputTemplate := filepath.Join(d.TmpDir, "%(id)s.%(ext)s")

	args := []string{
		"--extract-audio",
		"--audio-format", d.Config.AudioFormat,
		"-f", "bestaudio[ext=m4a]/bestaudio/best",
		"--retries", "10",
		"--fragment-retries", "10",
		"--no-playlist",
		"-o", outputTemplate,
	}

	if d.Config.CookiesBrowser != "" {
		args = append(args, "--cookies-from-browser", d.Config.CookiesBrowser)
	}

	return append(args, url)
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tunetag/internal/config"
	"tunetag/internal/downloader"
	"tunetag/internal/logger"
	"tunetag/internal/lyrics"
	"tunetag/internal/metadata"
	"tunetag/internal/provider"
	"tunetag/pkg/utils"
)

// ErrNoMatch signals that the search completed but no candidate survived
// ranking. It is a clean "nothing found", not a failure.
var ErrNoMatch = errors.New("no matching metadata found")

// Options are the per-run parameters on top of the configuration.
type Options struct {
	URL    string
	Song   string // overrides the query derived from the video title
	Artist string // exact-match filter
	Album  string // exact-match filter

	// OnRanked, when set, is called once the candidates are ranked and
	// before any download starts.
	OnRanked func(*Result)
}

// Result is the outcome of a run.
type Result struct {
	Video  downloader.VideoInfo
	Query  string
	Ranked []metadata.Track
	Best   metadata.Track
	File   string // final library path; empty when nothing was downloaded
}

// Search probes the video, expands the query, fans out to the configured
// providers and ranks the candidates. It performs no download.
func Search(ctx context.Context, cfg config.Config, log *logger.Logger, opts Options) (*Result, error) {
	dl := downloader.New(cfg, log, "")
	video, err := dl.Probe(ctx, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to probe video: %w", err)
	}

	query := opts.Song
	if query == "" {
		query = metadata.CleanVideoTitle(video.Title)
	}
	log.Info("Searching metadata for %q", query)

	variants := metadata.Expand(query, video.Title)
	log.Debug("Query variants: %v", variants)

	filter := metadata.Filter{Artist: opts.Artist, Album: opts.Album}
	agg := metadata.NewAggregator(provider.NewRegistry(cfg), log)
	pool, err := agg.Aggregate(ctx, variants, cfg.MetadataProviders, filter)
	if err != nil {
		return nil, err
	}
	log.Debug("Collected %d unique candidates", len(pool))

	ranked := metadata.NewRanker(cfg.SearchSensitivity, log).Rank(query, pool, video.Title)
	if len(ranked) == 0 {
		return nil, ErrNoMatch
	}

	return &Result{
		Video:  video,
		Query:  query,
		Ranked: ranked,
		Best:   ranked[0],
	}, nil
}

// Run executes the full flow: search and rank metadata, download the audio,
// tag it and file it into the library. In dry-run mode it stops after
// ranking.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger, tmpDir string, opts Options) (*Result, error) {
	result, err := Search(ctx, cfg, log, opts)
	if err != nil {
		return nil, err
	}

	best := result.Best
	log.Info("Best match: %q by %q (%s, %s)", best.Name, best.Artist, best.Album, best.Provider)

	if opts.OnRanked != nil {
		opts.OnRanked(result)
	}

	if cfg.DryRun {
		return result, nil
	}

	dl := downloader.New(cfg, log, tmpDir)
	path, err := dl.Download(ctx, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	if cfg.FetchLyrics {
		if lr, err := lyrics.NewClient().Fetch(ctx, best.Artist, best.Name, best.Album); err != nil {
			log.Warn("Failed to fetch lyrics: %v", err)
		} else if lr.Plain != "" {
			best.Lyrics = lr.Plain
		}
	}

	log.Info("=== Writing tags ===")
	if err := metadata.WriteTags(path, best); err != nil {
		return nil, err
	}

	if best.ArtworkURL != "" {
		if err := embedArtwork(ctx, path, best.ArtworkURL); err != nil {
			log.Warn("Failed to embed artwork: %v", err)
		}
	}

	final, err := utils.MoveToLibrary(path, cfg.OutputDir, metadata.SubDirFromTags)
	if err != nil {
		return nil, fmt.Errorf("failed to move file to library: %w", err)
	}

	log.Info("Saved to %s", final)
	result.Best = best
	result.File = final
	return result, nil
}

func embedArtwork(ctx context.Context, filePath, artworkURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artworkURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create artwork request: %w", err)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("artwork download returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read artwork data: %w", err)
	}

	return metadata.WriteArtwork(filePath, data)
}

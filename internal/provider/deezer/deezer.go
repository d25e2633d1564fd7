package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tunetag/internal/metadata"
)

// Client is a Deezer API client that implements metadata.Provider.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// New creates a new Deezer client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://api.deezer.com",
	}
}

func (c *Client) Name() string { return "deezer" }

// Search queries the Deezer search API and returns matching tracks.
func (c *Client) Search(ctx context.Context, query string) ([]metadata.Track, error) {
	if query == "" {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s/search?q=%s&limit=10", c.apiURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create deezer request: %w", err)
	}
	req.Header.Set("User-Agent", "tunetag/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deezer search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("deezer search returned %d: %s", resp.StatusCode, body)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode deezer response: %w", err)
	}

	if searchResp.Error != nil {
		return nil, fmt.Errorf("deezer API error: %s", searchResp.Error.Message)
	}

	return parseResults(searchResp.Data), nil
}

func parseResults(items []trackItem) []metadata.Track {
	var results []metadata.Track
	for _, item := range items {
		artworkURL := item.Album.CoverXL
		if artworkURL == "" {
			artworkURL = item.Album.CoverBig
		}

		// Deezer's search results don't carry release dates; the ranker
		// treats these tracks as undated.
		results = append(results, metadata.Track{
			Name:       item.TitleShort,
			Artist:     item.Artist.Name,
			Album:      item.Album.Title,
			ArtworkURL: artworkURL,
			Duration:   time.Duration(item.Duration) * time.Second,
			Provider:   "deezer",
			Key:        trackKey(item),
		})
	}
	return results
}

// trackKey derives the identity key from the Deezer track ID, falling back
// to a fingerprint of the identifying fields.
func trackKey(item trackItem) string {
	if item.ID != 0 {
		return "deezer:" + strconv.FormatInt(item.ID, 10)
	}
	return metadata.Fingerprint("deezer", item.TitleShort, item.Artist.Name, item.Album.Title)
}

// Deezer API response types

type searchResponse struct {
	Data  []trackItem `json:"data"`
	Error *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type trackItem struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	TitleShort string    `json:"title_short"`
	Duration   int       `json:"duration"`
	Artist     artist    `json:"artist"`
	Album      albumInfo `json:"album"`
}

type artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type albumInfo struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	CoverBig string `json:"cover_big"`
	CoverXL  string `json:"cover_xl"`
}

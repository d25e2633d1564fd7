package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tunetag/internal/metadata"
)

// Client is an iTunes Search API client that implements metadata.Provider.
type Client struct {
	httpClient *http.Client
	apiURL     string
	country    string
}

// New creates a new iTunes client. country is the two-letter storefront
// code; empty defaults to "us".
func New(country string) *Client {
	if country == "" {
		country = "us"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://itunes.apple.com/search",
		country:    country,
	}
}

func (c *Client) Name() string { return "itunes" }

// Search queries the iTunes Search API and returns matching tracks.
func (c *Client) Search(ctx context.Context, query string) ([]metadata.Track, error) {
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("term", query)
	params.Set("country", c.country)
	params.Set("media", "music")
	params.Set("entity", "song")
	params.Set("limit", "10")

	reqURL := fmt.Sprintf("%s?%s", c.apiURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create itunes request: %w", err)
	}
	req.Header.Set("User-Agent", "tunetag/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("itunes search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("itunes search returned %d: %s", resp.StatusCode, body)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode itunes response: %w", err)
	}

	return parseResults(searchResp.Results), nil
}

func parseResults(items []resultItem) []metadata.Track {
	var results []metadata.Track
	for _, item := range items {
		if item.WrapperType != "" && item.WrapperType != "track" {
			continue
		}

		results = append(results, metadata.Track{
			Name:        item.TrackName,
			Artist:      item.ArtistName,
			Album:       item.CollectionName,
			ReleaseDate: item.ReleaseDate,
			Genre:       item.PrimaryGenreName,
			TrackNumber: item.TrackNumber,
			ArtworkURL:  artworkURL(item.ArtworkURL100),
			Duration:    time.Duration(item.TrackTimeMillis) * time.Millisecond,
			Provider:    "itunes",
			Key:         trackKey(item),
		})
	}
	return results
}

// trackKey derives the identity key: the numeric track ID when present,
// a fingerprint of the identifying fields otherwise.
func trackKey(item resultItem) string {
	if item.TrackID != 0 {
		return "itunes:" + strconv.FormatInt(item.TrackID, 10)
	}
	return metadata.Fingerprint("itunes", item.TrackName, item.ArtistName, item.CollectionName)
}

// artworkURL upgrades the default 100x100 thumbnail to 600x600.
func artworkURL(u string) string {
	return strings.Replace(u, "100x100", "600x600", 1)
}

// iTunes Search API response types

type searchResponse struct {
	ResultCount int          `json:"resultCount"`
	Results     []resultItem `json:"results"`
}

type resultItem struct {
	WrapperType      string `json:"wrapperType"`
	TrackID          int64  `json:"trackId"`
	TrackName        string `json:"trackName"`
	ArtistName       string `json:"artistName"`
	CollectionName   string `json:"collectionName"`
	PrimaryGenreName string `json:"primaryGenreName"`
	TrackNumber      int    `json:"trackNumber"`
	TrackTimeMillis  int    `json:"trackTimeMillis"`
	ArtworkURL100    string `json:"artworkUrl100"`
	ReleaseDate      string `json:"releaseDate"`
}

package spotify

import (
	"context"
	"fmt"
	"sync"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"tunetag/internal/metadata"
)

// Client is a Spotify Web API adapter that implements metadata.Provider.
// It authenticates with the client-credentials flow, which is enough for
// catalog search and needs no user interaction.
type Client struct {
	clientID     string
	clientSecret string
	country      string

	mu  sync.Mutex
	api *spotify.Client
}

// New creates a new Spotify adapter. The API client is built lazily on the
// first search so that constructing the registry never touches the network.
func New(clientID, clientSecret, country string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		country:      country,
	}
}

func (c *Client) Name() string { return "spotify" }

func (c *Client) apiClient(ctx context.Context) (*spotify.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api != nil {
		return c.api, nil
	}
	if c.clientID == "" || c.clientSecret == "" {
		return nil, fmt.Errorf("spotify client credentials are not configured")
	}

	cc := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := cc.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("spotify auth failed: %w", err)
	}

	c.api = spotify.New(spotifyauth.New().Client(ctx, token))
	return c.api, nil
}

// Search queries the Spotify track search API and returns matching tracks.
func (c *Client) Search(ctx context.Context, query string) ([]metadata.Track, error) {
	if query == "" {
		return nil, nil
	}

	api, err := c.apiClient(ctx)
	if err != nil {
		return nil, err
	}

	opts := []spotify.RequestOption{spotify.Limit(10)}
	if c.country != "" {
		opts = append(opts, spotify.Market(c.country))
	}

	result, err := api.Search(ctx, query, spotify.SearchTypeTrack, opts...)
	if err != nil {
		return nil, fmt.Errorf("spotify search failed: %w", err)
	}
	if result.Tracks == nil {
		return nil, nil
	}

	return parseTracks(result.Tracks.Tracks), nil
}

func parseTracks(items []spotify.FullTrack) []metadata.Track {
	var results []metadata.Track
	for _, item := range items {
		var artworkURL string
		if len(item.Album.Images) > 0 {
			artworkURL = item.Album.Images[0].URL
		}

		results = append(results, metadata.Track{
			Name:   item.Name,
			Artist: joinArtists(item.Artists),
			Album:  item.Album.Name,
			// Spotify reports release dates at whatever precision the
			// label supplied: year, year-month or full date.
			ReleaseDate: item.Album.ReleaseDate,
			TrackNumber: int(item.TrackNumber),
			ArtworkURL:  artworkURL,
			Duration:    item.TimeDuration(),
			Provider:    "spotify",
			Key:         trackKey(item),
		})
	}
	return results
}

// trackKey derives the identity key from the Spotify track ID, falling back
// to a fingerprint of the identifying fields.
func trackKey(item spotify.FullTrack) string {
	if item.ID != "" {
		return "spotify:" + string(item.ID)
	}
	return metadata.Fingerprint("spotify", item.Name, joinArtists(item.Artists), item.Album.Name)
}

func joinArtists(artists []spotify.SimpleArtist) string {
	if len(artists) == 0 {
		return ""
	}
	joined := artists[0].Name
	for _, a := range artists[1:] {
		joined += ", " + a.Name
	}
	return joined
}

package spotify

import (
	"context"
	"testing"
	"time"

	"github.com/zmb3/spotify/v2"
)

func fullTrack(id, name, artist, album, releaseDate string) spotify.FullTrack {
	return spotify.FullTrack{
		SimpleTrack: spotify.SimpleTrack{
			ID:          spotify.ID(id),
			Name:        name,
			Artists:     []spotify.SimpleArtist{{Name: artist}},
			Duration:    209829,
			TrackNumber: 1,
		},
		Album: spotify.SimpleAlbum{
			Name:        album,
			ReleaseDate: releaseDate,
			Images:      []spotify.Image{{URL: "https://example.com/art.jpg"}},
		},
	}
}

func TestParseTracks(t *testing.T) {
	results := parseTracks([]spotify.FullTrack{
		fullTrack("4fzsfWzRhPawzqhX8Qt9F3", "Cradles", "Sub Urban", "Cradles", "2019-03-11"),
	})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.Name != "Cradles" {
		t.Errorf("Name = %q, want %q", r.Name, "Cradles")
	}
	if r.Artist != "Sub Urban" {
		t.Errorf("Artist = %q, want %q", r.Artist, "Sub Urban")
	}
	if r.ReleaseDate != "2019-03-11" {
		t.Errorf("ReleaseDate = %q, want %q", r.ReleaseDate, "2019-03-11")
	}
	if r.Duration != 209829*time.Millisecond {
		t.Errorf("Duration = %v, want %v", r.Duration, 209829*time.Millisecond)
	}
	if r.ArtworkURL != "https://example.com/art.jpg" {
		t.Errorf("ArtworkURL = %q", r.ArtworkURL)
	}
	if r.Key != "spotify:4fzsfWzRhPawzqhX8Qt9F3" {
		t.Errorf("Key = %q", r.Key)
	}
}

func TestParseTracksCoarseReleaseDates(t *testing.T) {
	// Spotify release dates come at year, year-month or day precision and
	// must be passed through untouched for the ranker's date handling.
	for _, date := range []string{"2019", "2019-03", "2019-03-11"} {
		results := parseTracks([]spotify.FullTrack{
			fullTrack("id", "Cradles", "Sub Urban", "Cradles", date),
		})
		if results[0].ReleaseDate != date {
			t.Errorf("ReleaseDate = %q, want %q", results[0].ReleaseDate, date)
		}
	}
}

func TestJoinArtists(t *testing.T) {
	got := joinArtists([]spotify.SimpleArtist{{Name: "Sub Urban"}, {Name: "Bella Poarch"}})
	if got != "Sub Urban, Bella Poarch" {
		t.Errorf("joinArtists = %q", got)
	}
	if joinArtists(nil) != "" {
		t.Error("joinArtists(nil) should be empty")
	}
}

func TestSearchWithoutCredentials(t *testing.T) {
	c := New("", "", "")
	if _, err := c.Search(context.Background(), "Cradles"); err == nil {
		t.Fatal("expected error when credentials are missing")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := New("", "", "")
	results, err := c.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results for empty query, got %v", results)
	}
}

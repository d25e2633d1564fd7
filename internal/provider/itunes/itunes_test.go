package itunes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("term") != "Cradles" {
			t.Errorf("unexpected term: %q", q.Get("term"))
		}
		if q.Get("country") != "gb" {
			t.Errorf("unexpected country: %q", q.Get("country"))
		}
		if q.Get("entity") != "song" {
			t.Errorf("unexpected entity: %q", q.Get("entity"))
		}
		json.NewEncoder(w).Encode(searchResponse{
			ResultCount: 2,
			Results: []resultItem{
				{
					WrapperType:      "track",
					TrackID:          1452873066,
					TrackName:        "Cradles",
					ArtistName:       "Sub Urban",
					CollectionName:   "Cradles - Single",
					PrimaryGenreName: "Alternative",
					TrackNumber:      1,
					TrackTimeMillis:  209829,
					ArtworkURL100:    "https://example.com/art/100x100bb.jpg",
					ReleaseDate:      "2019-03-11T08:00:00Z",
				},
				{
					WrapperType: "collection",
					TrackName:   "should be skipped",
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New("gb")
	c.apiURL = srv.URL

	results, err := c.Search(context.Background(), "Cradles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.Name != "Cradles" {
		t.Errorf("Name = %q, want %q", r.Name, "Cradles")
	}
	if r.Album != "Cradles - Single" {
		t.Errorf("Album = %q, want %q", r.Album, "Cradles - Single")
	}
	if r.ReleaseDate != "2019-03-11T08:00:00Z" {
		t.Errorf("ReleaseDate = %q, want the raw timestamp", r.ReleaseDate)
	}
	if r.ArtworkURL != "https://example.com/art/600x600bb.jpg" {
		t.Errorf("ArtworkURL = %q, want the 600x600 upgrade", r.ArtworkURL)
	}
	if r.Key != "itunes:1452873066" {
		t.Errorf("Key = %q, want %q", r.Key, "itunes:1452873066")
	}
}

func TestSearchDefaultCountry(t *testing.T) {
	c := New("")
	if c.country != "us" {
		t.Errorf("country = %q, want %q", c.country, "us")
	}
}

func TestTrackKeyFallback(t *testing.T) {
	a := trackKey(resultItem{TrackName: "Cradles", ArtistName: "Sub Urban", CollectionName: "Cradles"})
	b := trackKey(resultItem{TrackName: "Cradles", ArtistName: "Sub Urban", CollectionName: "Cradles"})
	if a != b {
		t.Errorf("fingerprint keys differ for identical fields: %q vs %q", a, b)
	}
	if a == "" {
		t.Error("fingerprint key must not be empty")
	}
}

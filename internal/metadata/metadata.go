package metadata

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// Track is one candidate metadata record returned by a provider.
type Track struct {
	Name        string
	Artist      string
	Album       string
	ReleaseDate string // "2020", "2020-03" or "2020-03-20", optionally with a trailing timestamp
	Genre       string
	TrackNumber int
	ArtworkURL  string
	Duration    time.Duration
	Lyrics      string
	Provider    string

	// Key identifies the record for deduplication. Each adapter derives it
	// from its own key fields: the native catalog ID where one exists,
	// Fingerprint otherwise. Two tracks with equal keys are duplicates.
	Key string
}

// Provider is the capability each metadata source plugs in: given one search
// phrase it returns an ordered list of candidate tracks or an error.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]Track, error)
}

// Registry resolves a configured provider name to an implementation.
// Unknown names yield *UnknownProviderError.
type Registry interface {
	Lookup(name string) (Provider, error)
}

// Fingerprint derives a stable identity key from an adapter's key fields,
// for sources whose API does not expose a usable native ID.
func Fingerprint(parts ...string) string {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(strings.ToLower(p)))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Filter is an optional artist/album exact-match pair. Empty fields match
// everything.
type Filter struct {
	Artist string
	Album  string
}

// Empty reports whether the filter constrains nothing.
func (f Filter) Empty() bool {
	return f.Artist == "" && f.Album == ""
}

// Matches reports whether a track satisfies both set fields.
func (f Filter) Matches(t Track) bool {
	if f.Artist != "" && t.Artist != f.Artist {
		return false
	}
	if f.Album != "" && t.Album != f.Album {
		return false
	}
	return true
}

// Partition reorders tracks so that filter matches come first, keeping the
// relative order within each group.
func (f Filter) Partition(tracks []Track) []Track {
	if f.Empty() {
		return tracks
	}

	matched := make([]Track, 0, len(tracks))
	var rest []Track
	for _, t := range tracks {
		if f.Matches(t) {
			matched = append(matched, t)
		} else {
			rest = append(rest, t)
		}
	}
	return append(matched, rest...)
}

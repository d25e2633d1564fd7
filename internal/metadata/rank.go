package metadata

import (
	"sort"
	"strings"
	"time"

	"tunetag/internal/logger"
)

// Weights for the combined score. The album and artist comparisons against
// the display title carry most of the signal; the track title already
// passed the relevance floor.
const (
	albumWeight  = 0.65
	artistWeight = 0.30
	titleWeight  = 0.05
)

// promotionWindow bounds how deep the release-date pass scans, and
// promotionThreshold is the fraction of the top entry's weighted score a
// candidate must reach to stay eligible for promotion.
const (
	promotionWindow    = 10
	promotionThreshold = 0.7
)

// scoredTrack pairs a candidate with its similarity scores while ranking.
type scoredTrack struct {
	track    Track
	title    float64
	album    float64
	artist   float64
	weighted float64
}

// outranks is the ranking order: higher weighted score first, then album,
// artist and title scores as successive tie-breaks.
func (s scoredTrack) outranks(o scoredTrack) bool {
	if s.weighted != o.weighted {
		return s.weighted > o.weighted
	}
	if s.album != o.album {
		return s.album > o.album
	}
	if s.artist != o.artist {
		return s.artist > o.artist
	}
	return s.title > o.title
}

// Ranker orders candidate tracks by similarity to the search query.
type Ranker struct {
	sensitivity float64
	logger      *logger.Logger
}

// NewRanker creates a Ranker. Candidates whose title similarity falls below
// sensitivity are dropped entirely.
func NewRanker(sensitivity float64, log *logger.Logger) *Ranker {
	return &Ranker{sensitivity: sensitivity, logger: log}
}

// Rank scores every candidate against the query, drops those below the
// relevance floor, sorts the rest and applies the release-date promotion
// pass. displayTitle is the raw video title; when present, the candidate's
// artist and album names are compared against it and folded into the
// weighted score. Returns nil when nothing survives.
func (r *Ranker) Rank(query string, tracks []Track, displayTitle string) []Track {
	if len(tracks) == 0 {
		return nil
	}

	// The leading words carry the most identifying signal and bound the
	// scorer cost on long queries.
	queryTokens := Normalize(query)
	if len(queryTokens) > 5 {
		queryTokens = queryTokens[:5]
	}
	titleTokens := Normalize(displayTitle)

	var scored []scoredTrack
	for _, t := range tracks {
		nameTokens := Normalize(CleanField(t.Name))
		titleDist := Jaccard(queryTokens, nameTokens)
		if titleDist < r.sensitivity {
			continue
		}

		var albumDist, artistDist, weighted float64
		if displayTitle != "" {
			// The display title often carries the artist and album names
			// too, so comparing those fields against it sharpens the match.
			artistTokens := Normalize(CleanField(t.Artist))
			artistDist = Jaccard(titleTokens, artistTokens)

			albumTokens := subtract(Normalize(CleanField(t.Album)), nameTokens, artistTokens)
			albumDist = Jaccard(titleTokens, albumTokens)

			weighted = albumDist*albumWeight + artistDist*artistWeight + titleDist*titleWeight
		}

		scored = append(scored, scoredTrack{
			track:    t,
			title:    titleDist,
			album:    albumDist,
			artist:   artistDist,
			weighted: weighted,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].outranks(scored[j]) })

	promoteOldestRelease(scored)

	ranked := make([]Track, 0, len(scored))
	for i, s := range scored {
		if i < 20 {
			r.logger.Debug("rank %d: title=%.3f album=%.3f artist=%.3f weighted=%.4f -- %s; %s; %s; %s",
				i, s.title, s.album, s.artist, s.weighted,
				s.track.Name, s.track.Album, s.track.Artist, s.track.ReleaseDate)
		}

		t := s.track
		if !(i == 0 && t.ReleaseDate == "") {
			t.ReleaseDate, _, _ = strings.Cut(t.ReleaseDate, "T")
		}
		ranked = append(ranked, t)
	}
	return ranked
}

// promoteOldestRelease prefers the oldest dated release among the near-top
// candidates, so an original recording beats reissues and compilations that
// score the same. Scanning stops once a candidate's weighted score drops
// below 70% of the top entry's; a dateless top entry is swapped out for any
// dated candidate still inside the threshold, with the threshold recomputed
// from the entry under scan while the top stays dateless.
func promoteOldestRelease(scored []scoredTrack) {
	if len(scored) == 0 {
		return
	}

	threshold := scored[0].weighted * promotionThreshold
	limit := len(scored)
	if limit > promotionWindow {
		limit = promotionWindow
	}

	for i := 1; i < limit; i++ {
		if scored[0].track.ReleaseDate == "" {
			threshold = scored[i].weighted * promotionThreshold
		}
		if scored[i].weighted < threshold {
			break
		}

		switch {
		case scored[i].track.ReleaseDate != "" && scored[0].track.ReleaseDate != "":
			top, errTop := parseReleaseDate(scored[0].track.ReleaseDate)
			cur, errCur := parseReleaseDate(scored[i].track.ReleaseDate)
			if errTop == nil && errCur == nil && top.After(cur) {
				scored[0], scored[i] = scored[i], scored[0]
			}
		case scored[0].track.ReleaseDate == "":
			scored[0], scored[i] = scored[i], scored[0]
		}
	}
}

// parseReleaseDate parses a release date at whichever precision it carries:
// year, year-month or full date. A trailing timestamp is ignored.
func parseReleaseDate(s string) (time.Time, error) {
	s, _, _ = strings.Cut(s, "T")
	layout := "2006-01-02"
	switch len(s) {
	case 4:
		layout = "2006"
	case 7:
		layout = "2006-01"
	}
	return time.Parse(layout, s)
}

// subtract returns the tokens of a not present in any of the exclusion sets.
func subtract(a []string, exclude ...[]string) []string {
	drop := make(map[string]bool)
	for _, set := range exclude {
		for _, t := range set {
			drop[t] = true
		}
	}

	kept := a[:0:0]
	for _, t := range a {
		if !drop[t] {
			kept = append(kept, t)
		}
	}
	return kept
}

package metadata

import (
	"context"
	"testing"
)

func newTestRanker(sensitivity float64) *Ranker {
	return NewRanker(sensitivity, testLogger())
}

func TestRankEmptyInput(t *testing.T) {
	if got := newTestRanker(0.3).Rank("cradles", nil, ""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestRankRelevanceFloor(t *testing.T) {
	tracks := []Track{
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "a"},
		{Name: "Shape of You", Artist: "Ed Sheeran", Album: "Divide", Key: "b"},
	}

	got := newTestRanker(0.3).Rank("Cradles", tracks, "Sub Urban - Cradles")
	if len(got) != 1 {
		t.Fatalf("expected 1 survivor, got %d: %v", len(got), got)
	}
	if got[0].Name != "Cradles" {
		t.Errorf("expected Cradles first, got %q", got[0].Name)
	}
}

func TestRankFloorDropsDespiteOtherScores(t *testing.T) {
	// Title similarity of 0.5 is below the floor; a perfect artist match
	// must not rescue the candidate.
	tracks := []Track{
		{Name: "Cradles", Artist: "Sub Urban", Album: "", Key: "a"},
	}

	got := newTestRanker(0.6).Rank("cradles deep", tracks, "Sub Urban")
	if len(got) != 0 {
		t.Errorf("expected candidate below floor to be dropped, got %v", got)
	}
}

func TestRankWeightedOrdering(t *testing.T) {
	tracks := []Track{
		{Name: "Cradles", Artist: "Nobody", Album: "Hits", Key: "a"},
		{Name: "Cradles", Artist: "Sub Urban", Album: "Hits", Key: "b"},
	}

	got := newTestRanker(0.3).Rank("Cradles", tracks, "Sub Urban - Cradles")
	if len(got) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(got))
	}
	if got[0].Artist != "Sub Urban" {
		t.Errorf("artist match should outrank, got %v first", got[0])
	}
}

func TestRankNoHintPreservesOrderOnTies(t *testing.T) {
	tracks := []Track{
		{Name: "Cradles", Artist: "First", Key: "a"},
		{Name: "Cradles", Artist: "Second", Key: "b"},
	}

	got := newTestRanker(0.3).Rank("Cradles", tracks, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(got))
	}
	if got[0].Artist != "First" || got[1].Artist != "Second" {
		t.Errorf("tied candidates should keep provider order, got %v", got)
	}
}

func TestRankPromotesDatedOverDatelessTop(t *testing.T) {
	tracks := []Track{
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "a", ReleaseDate: ""},
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "b", ReleaseDate: "2001-05-01"},
	}

	got := newTestRanker(0.3).Rank("Cradles", tracks, "Sub Urban - Cradles")
	if len(got) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(got))
	}
	if got[0].ReleaseDate != "2001-05-01" {
		t.Errorf("dated candidate should be promoted over dateless top, got %v first", got[0])
	}
}

func TestRankPromotesOlderRelease(t *testing.T) {
	tracks := []Track{
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "a", ReleaseDate: "2019-03-11"},
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "b", ReleaseDate: "2001-05-01"},
	}

	got := newTestRanker(0.3).Rank("Cradles", tracks, "Sub Urban - Cradles")
	if got[0].ReleaseDate != "2001-05-01" {
		t.Errorf("older release should win, got %v first", got[0])
	}
}

func TestRankPromotionHandlesCoarseDates(t *testing.T) {
	tracks := []Track{
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "a", ReleaseDate: "2015"},
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "b", ReleaseDate: "2013-06"},
	}

	got := newTestRanker(0.3).Rank("Cradles", tracks, "Sub Urban - Cradles")
	if got[0].ReleaseDate != "2013-06" {
		t.Errorf("year-month date should compare against year-only, got %v first", got[0])
	}
}

func TestRankPromotionStopsBelowThreshold(t *testing.T) {
	// The second candidate's weighted score is far below 70% of the top's,
	// so its older release date must not promote it.
	tracks := []Track{
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "a", ReleaseDate: "2020-01-01"},
		{Name: "Cradles", Artist: "Nobody", Album: "Unrelated", Key: "b", ReleaseDate: "2001-05-01"},
	}

	got := newTestRanker(0.3).Rank("Cradles", tracks, "Sub Urban - Cradles")
	if got[0].ReleaseDate != "2020-01-01" {
		t.Errorf("dissimilar candidate must not be promoted, got %v first", got[0])
	}
}

func TestRankTruncatesReleaseTimestamps(t *testing.T) {
	tracks := []Track{
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "a", ReleaseDate: "2019-03-11T08:00:00Z"},
		{Name: "Cradles", Artist: "Sub Urban", Album: "Cradles", Key: "b", ReleaseDate: "2019-06-01T00:00:00Z"},
	}

	got := newTestRanker(0.3).Rank("Cradles", tracks, "Sub Urban - Cradles")
	for _, tr := range got {
		if len(tr.ReleaseDate) != 10 {
			t.Errorf("release date not truncated: %q", tr.ReleaseDate)
		}
	}
	if got[0].ReleaseDate != "2019-03-11" {
		t.Errorf("older timestamped release should be first, got %v", got[0])
	}
}

// End-to-end over aggregation and ranking: an exact match from one of
// several providers comes out on top and the noise is filtered away.
func TestSearchAndRankEndToEnd(t *testing.T) {
	itunes := &stubProvider{name: "itunes", results: map[string][]Track{
		"Cradles": {
			track("itunes", "i1", "Shape of You", "Ed Sheeran", "Divide"),
			track("itunes", "i2", "Cradles", "Sub Urban", "Cradles"),
		},
	}}
	deezer := &stubProvider{name: "deezer", results: map[string][]Track{
		"Cradles": {
			track("deezer", "d1", "Cradles", "Sub Urban", "Cradles - Single"),
			track("deezer", "d2", "Believer", "Imagine Dragons", "Evolve"),
		},
	}}
	reg := &stubRegistry{providers: map[string]Provider{"itunes": itunes, "deezer": deezer}}

	agg := NewAggregator(reg, testLogger())
	variants := Expand("Cradles", "Cradles")
	pool, err := agg.Aggregate(context.Background(), variants, []string{"itunes", "deezer"}, Filter{Artist: "Sub Urban"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ranked := newTestRanker(0.3).Rank("Cradles", pool, "Cradles")
	if len(ranked) == 0 {
		t.Fatal("expected ranked results")
	}
	if ranked[0].Name != "Cradles" || ranked[0].Artist != "Sub Urban" {
		t.Errorf("expected exact match first, got %v", ranked[0])
	}
	for _, tr := range ranked {
		if tr.Name == "Shape of You" || tr.Name == "Believer" {
			t.Errorf("low-similarity track survived the floor: %v", tr)
		}
	}
}

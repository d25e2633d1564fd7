package metadata

import (
	"context"
	"errors"

	"tunetag/internal/logger"
)

// Aggregator fans query variants out to the configured providers and
// collects a deduplicated candidate pool for ranking.
type Aggregator struct {
	registry Registry
	logger   *logger.Logger
}

// NewAggregator creates an Aggregator resolving provider names through reg.
func NewAggregator(reg Registry, log *logger.Logger) *Aggregator {
	return &Aggregator{registry: reg, logger: log}
}

// Aggregate queries every configured provider with every variant, strictly in
// order. A failing provider call is logged and contributes nothing; unknown
// provider names are skipped, but if every configured name is unknown the
// whole run is a configuration error (ErrNoProviders) rather than a silent
// empty result. Each provider batch is partitioned by the filter before
// joining the pool, and the pool is deduplicated by identity key in
// first-seen order. An empty pool with usable providers is a legitimate
// "no match" outcome, not an error.
func (a *Aggregator) Aggregate(ctx context.Context, variants, providers []string, filter Filter) ([]Track, error) {
	var pool []Track
	unknown := make(map[string]bool)

	for _, query := range variants {
		for _, name := range providers {
			p, err := a.registry.Lookup(name)
			if err != nil {
				var ue *UnknownProviderError
				if errors.As(err, &ue) {
					a.logger.Warn("Provider %q isn't implemented, skipping", name)
					unknown[name] = true
					continue
				}
				return nil, err
			}

			a.logger.Debug("Searching %s with query %q", name, query)
			tracks, err := p.Search(ctx, query)
			if err != nil {
				a.logger.Warn("Provider %s failed for %q, continuing with the others: %v", name, query, err)
				continue
			}
			if len(tracks) == 0 {
				continue
			}
			a.logger.Debug("%s returned %d results", name, len(tracks))

			pool = append(pool, filter.Partition(tracks)...)
		}
	}

	if len(unknown) > 0 && len(unknown) == countDistinct(providers) {
		return nil, ErrNoProviders
	}

	return dedupe(pool), nil
}

func countDistinct(names []string) int {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return len(set)
}

// dedupe drops tracks whose identity key was already seen, preserving
// first-seen order. Tracks without a key fall back to a field fingerprint.
func dedupe(tracks []Track) []Track {
	seen := make(map[string]bool, len(tracks))
	unique := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		key := t.Key
		if key == "" {
			key = Fingerprint(t.Provider, t.Name, t.Artist, t.Album)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, t)
	}
	return unique
}

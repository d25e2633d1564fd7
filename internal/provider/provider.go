// Package provider contains the metadata source adapters and the registry
// that maps configured provider names to them.
//
// The Provider interface is defined in internal/metadata (metadata.Provider),
// following the Go convention of defining interfaces where they are consumed.
// Each sub-package here implements it for one catalog service and owns that
// service's network calls, auth and identity-key derivation.
package provider

import (
	"tunetag/internal/config"
	"tunetag/internal/metadata"
	"tunetag/internal/provider/deezer"
	"tunetag/internal/provider/itunes"
	"tunetag/internal/provider/musicbrainz"
	"tunetag/internal/provider/spotify"
)

// Registry resolves provider names to adapters. It implements
// metadata.Registry.
type Registry struct {
	providers map[string]metadata.Provider
}

// NewRegistry builds the registry of all known adapters from the
// configuration. Adapters are constructed eagerly but do no network I/O
// until searched.
func NewRegistry(cfg config.Config) *Registry {
	r := &Registry{providers: make(map[string]metadata.Provider)}
	r.register(itunes.New(cfg.ItunesCountry))
	r.register(deezer.New())
	r.register(musicbrainz.New())
	r.register(spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.SpotifyCountry))
	return r
}

func (r *Registry) register(p metadata.Provider) {
	r.providers[p.Name()] = p
}

// Lookup returns the adapter for name, or *metadata.UnknownProviderError.
func (r *Registry) Lookup(name string) (metadata.Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, &metadata.UnknownProviderError{Name: name}
	}
	return p, nil
}

// Names lists the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

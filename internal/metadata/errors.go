package metadata

import (
	"errors"
	"fmt"
)

// UnknownProviderError is returned by a Registry when a configured provider
// name has no implementation.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown metadata provider %q", e.Name)
}

// ErrNoProviders indicates that none of the configured provider names is
// recognized, so no candidates could ever be produced. This is a fatal
// configuration error, distinct from a legitimate empty search result.
var ErrNoProviders = errors.New("no configured metadata provider is recognized")

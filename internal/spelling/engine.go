package spelling

import (
	"context"
	"errors"
)

var (
	ErrEngineUnavailable = errors.New("spell checking engine is not available")
	ErrUnsupportedLocale = errors.New("unsupported locale")
)

// Engine is a dictionary-backed spell checker. Implementations decide
// how words are looked up (native binary, bundled word lists, remote
// service); the Checker owns tokenization and exclusion policy.
type Engine interface {
	Name() string
	// Available reports whether the engine can serve lookups at all.
	Available() bool
	// Supports reports whether a dictionary exists for the locale, after
	// falling back from a region variant to its base language.
	Supports(locale Locale) bool
	// Lookup returns the misspelled subset of words mapped to ranked
	// suggestions. Correct words are absent from the map.
	Lookup(ctx context.Context, locale Locale, words []string) (map[string][]string, error)
}

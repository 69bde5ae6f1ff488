package spelling

import (
	"context"
	"strings"
)

// fakeEngine flags words listed in misspelled and records lookups.
type fakeEngine struct {
	unavailable bool
	locales     map[string]bool
	misspelled  map[string][]string
	calls       int
	looked      [][]string
}

func newFakeEngine(misspelled map[string][]string) *fakeEngine {
	return &fakeEngine{
		locales:    map[string]bool{"en": true},
		misspelled: misspelled,
	}
}

func (f *fakeEngine) Name() string    { return "fake" }
func (f *fakeEngine) Available() bool { return !f.unavailable }

func (f *fakeEngine) Supports(loc Locale) bool {
	for _, name := range loc.candidates() {
		if f.locales[name] {
			return true
		}
	}
	return false
}

func (f *fakeEngine) Lookup(ctx context.Context, loc Locale, words []string) (map[string][]string, error) {
	f.calls++
	f.looked = append(f.looked, words)
	out := make(map[string][]string)
	for _, w := range words {
		if s, ok := f.misspelled[strings.ToLower(w)]; ok {
			out[w] = s
		}
	}
	return out, nil
}

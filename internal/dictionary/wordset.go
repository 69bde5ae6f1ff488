package dictionary

import (
	"sort"

	"github.com/siteproof/api/internal/model"
)

// WordSet is a set of normalized words. Membership tests normalize the
// query the same way stored words were normalized.
type WordSet map[string]struct{}

// NewWordSet builds a set from words, normalizing each.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	s.Add(words...)
	return s
}

// Add inserts the normalized form of each word. Blank words are skipped.
func (s WordSet) Add(words ...string) {
	for _, w := range words {
		if n := model.NormalizeWord(w); n != "" {
			s[n] = struct{}{}
		}
	}
}

// Contains normalizes word before checking membership.
func (s WordSet) Contains(word string) bool {
	_, ok := s[model.NormalizeWord(word)]
	return ok
}

func (s WordSet) Len() int {
	return len(s)
}

// Words returns the members in sorted order.
func (s WordSet) Words() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

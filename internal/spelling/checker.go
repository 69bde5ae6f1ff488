package spelling

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/issue"
)

// IntentionalRepeatThreshold is the occurrence count at which a repeated
// unknown word is treated as a deliberate term (a brand or product name)
// and dropped from the results.
const IntentionalRepeatThreshold = 3

// Misspelling is a flagged word occurrence.
type Misspelling struct {
	Word        string   `json:"word"`
	Suggestions []string `json:"suggestions"`
	Offset      int      `json:"offset"`
	Line        int      `json:"line"`
}

// Checker applies exclusion and dedup policy on top of an Engine. It is
// cheap to build; create one per request so ignore lists don't leak
// between tenants.
type Checker struct {
	engine         Engine
	logger         hclog.Logger
	minTokenLength int

	mu     sync.RWMutex
	ignore map[string]struct{}
}

// Option configures a Checker.
type Option func(*Checker)

// WithIgnoreWords seeds the per-instance ignore list.
func WithIgnoreWords(words ...string) Option {
	return func(c *Checker) {
		for _, w := range words {
			addWithInflections(c.ignore, w)
		}
	}
}

// WithLogger sets the logger used for per-check debug output.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMinTokenLength skips tokens shorter than n runes. Defaults to 2.
func WithMinTokenLength(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.minTokenLength = n
		}
	}
}

// NewChecker wraps engine with the default ignore list and a minimum
// token length of 2. Options are applied in order.
func NewChecker(engine Engine, opts ...Option) *Checker {
	c := &Checker{
		engine:         engine,
		logger:         hclog.NewNullLogger(),
		minTokenLength: 2,
		ignore:         make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAvailable reports whether the underlying engine can serve checks.
func (c *Checker) IsAvailable() bool {
	return c.engine != nil && c.engine.Available()
}

// AddIgnoreWords extends the ignore list for the lifetime of this checker.
func (c *Checker) AddIgnoreWords(words ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range words {
		addWithInflections(c.ignore, w)
	}
}

func (c *Checker) isIgnored(normalized string) bool {
	if _, ok := defaultIgnoreSet[normalized]; ok {
		return true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ignore[normalized]
	return ok
}

type candidate struct {
	token      Token
	surface    string
	normalized string
}

// Check returns the misspelled words of text in offset order.
//
// Words that occur IntentionalRepeatThreshold or more times are left out
// entirely; a word seen twice is reported once, at its first occurrence.
func (c *Checker) Check(ctx context.Context, text, locale string) ([]Misspelling, error) {
	if strings.TrimSpace(text) == "" {
		return []Misspelling{}, nil
	}
	if !c.IsAvailable() {
		return nil, ErrEngineUnavailable
	}

	loc, err := ParseLocale(locale)
	if err != nil {
		return nil, err
	}
	if !c.engine.Supports(loc) {
		return nil, fmt.Errorf("%w: %s is not installed for %s", ErrUnsupportedLocale, loc, c.engine.Name())
	}

	ex := findExclusions(text)
	counts := make(map[string]int)
	var candidates []candidate

	for _, tok := range tokenize(text) {
		surface := lookupForm(tok.Text)
		normalized := strings.ToLower(surface)
		if ex.covers(tok, normalized) {
			continue
		}
		counts[normalized]++

		if utf8.RuneCountInString(surface) < c.minTokenLength || c.isIgnored(normalized) {
			continue
		}
		candidates = append(candidates, candidate{token: tok, surface: surface, normalized: normalized})
	}

	var lookup []string
	queued := make(map[string]string)
	for _, cand := range candidates {
		if counts[cand.normalized] >= IntentionalRepeatThreshold {
			continue
		}
		if _, ok := queued[cand.normalized]; ok {
			continue
		}
		queued[cand.normalized] = cand.surface
		lookup = append(lookup, cand.surface)
	}

	if len(lookup) == 0 {
		return []Misspelling{}, nil
	}

	flagged, err := c.engine.Lookup(ctx, loc, lookup)
	if err != nil {
		return nil, fmt.Errorf("%s lookup failed: %w", c.engine.Name(), err)
	}

	misspellings := make([]Misspelling, 0, len(flagged))
	reported := make(map[string]bool)
	for _, cand := range candidates {
		if counts[cand.normalized] >= IntentionalRepeatThreshold || reported[cand.normalized] {
			continue
		}
		suggestions, ok := flagged[queued[cand.normalized]]
		if !ok {
			continue
		}
		reported[cand.normalized] = true
		if suggestions == nil {
			suggestions = []string{}
		}
		misspellings = append(misspellings, Misspelling{
			Word:        cand.surface,
			Suggestions: suggestions,
			Offset:      cand.token.Offset,
			Line:        cand.token.Line,
		})
	}

	c.logger.Debug("spell check complete",
		"engine", c.engine.Name(),
		"locale", loc.String(),
		"tokens", len(candidates),
		"looked_up", len(lookup),
		"misspellings", len(misspellings))

	return misspellings, nil
}

// ToIssues converts misspellings into spelling issues.
func ToIssues(misspellings []Misspelling) []issue.Issue {
	issues := make([]issue.Issue, 0, len(misspellings))
	for _, m := range misspellings {
		issues = append(issues, issue.Issue{
			Category:    issue.CategorySpelling,
			Severity:    issue.SeverityError,
			TextExcerpt: m.Word,
			Suggestion:  strings.Join(m.Suggestions, " or "),
			Message:     fmt.Sprintf("Possible misspelling: %q", m.Word),
			Position:    &issue.Position{Offset: m.Offset, Line: m.Line},
		})
	}
	return issues
}

// CalculateScore takes 5 points off baseScore per error, never going
// below 50.
func CalculateScore(baseScore, errorCount int) int {
	score := baseScore - 5*errorCount
	if score < 50 {
		return 50
	}
	return score
}

package spelling

import (
	"context"
	"errors"
	"testing"

	"github.com/siteproof/api/internal/issue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWords = []string{
	"our", "website", "helps", "your", "company", "find", "new", "services",
	"visit", "or", "mail", "today", "we", "love", "it", "is", "great", "works",
	"test", "set", "the", "team", "at", "builds", "tools", "for", "people", "and",
	"this", "line", "has", "no", "errors", "second", "third", "read", "blog",
}

func newTestChecker(t *testing.T, opts ...Option) *Checker {
	t.Helper()
	engine, err := NewWordListEngineFromWords(map[string][]string{"en": testWords})
	require.NoError(t, err)
	return NewChecker(engine, opts...)
}

func words(ms []Misspelling) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Word)
	}
	return out
}

func TestCheckEmptyText(t *testing.T) {
	checker := newTestChecker(t)
	for _, text := range []string{"", "   ", "\n\t\n"} {
		got, err := checker.Check(context.Background(), text, "en")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestCheckCleanText(t *testing.T) {
	checker := newTestChecker(t)
	got, err := checker.Check(context.Background(), "Our website helps your company find new services.", "en")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 100, CalculateScore(100, len(got)))
}

func TestCheckFindsMisspellings(t *testing.T) {
	checker := newTestChecker(t)
	got, err := checker.Check(context.Background(), "Our websiet helps your compnay find new servises.", "en-US")
	require.NoError(t, err)

	require.Equal(t, []string{"websiet", "compnay", "servises"}, words(got))
	assert.Contains(t, got[0].Suggestions, "website")
	assert.Contains(t, got[1].Suggestions, "company")
	assert.Contains(t, got[2].Suggestions, "services")
	assert.Equal(t, 4, got[0].Offset)
	assert.Equal(t, 1, got[0].Line)
}

func TestCheckLineNumbers(t *testing.T) {
	checker := newTestChecker(t)
	text := "This line has no errors.\nSecond line.\nThird line has a mistaek."
	got, err := checker.Check(context.Background(), text, "en")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mistaek", got[0].Word)
	assert.Equal(t, 3, got[0].Line)
	assert.Equal(t, text[got[0].Offset:got[0].Offset+len("mistaek")], "mistaek")
}

func TestCheckSkipsURLsAndEmails(t *testing.T) {
	engine := newFakeEngine(map[string][]string{
		"exampel": {"example"},
		"pagge":   {"page"},
		"suport":  {"support"},
		"typo":    {"type"},
	})
	checker := NewChecker(engine)

	text := "Visit https://exampel.com/pagge or mail suport@exampel.com today. Also exampel and typo."
	got, err := checker.Check(context.Background(), text, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"typo"}, words(got))

	for _, looked := range engine.looked {
		assert.NotContains(t, looked, "pagge")
		assert.NotContains(t, looked, "suport")
	}
}

func TestCheckBareDomain(t *testing.T) {
	engine := newFakeEngine(map[string][]string{"acmesoft": {}})
	checker := NewChecker(engine)

	got, err := checker.Check(context.Background(), "Find us at acmesoft.io for details.", "en")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckRepeatedTermIsIntentional(t *testing.T) {
	engine := newFakeEngine(map[string][]string{"zyntra": {"zebra"}})
	checker := NewChecker(engine)

	text := "Zyntra is great. Zyntra works. We love zyntra."
	got, err := checker.Check(context.Background(), text, "en")
	require.NoError(t, err)
	assert.Empty(t, got)
	for _, looked := range engine.looked {
		assert.NotContains(t, looked, "Zyntra")
		assert.NotContains(t, looked, "zyntra")
	}
}

func TestCheckTwiceReportsFirstOccurrence(t *testing.T) {
	engine := newFakeEngine(map[string][]string{"teh": {"the"}})
	checker := NewChecker(engine)

	text := "We love teh team. Teh team builds tools."
	got, err := checker.Check(context.Background(), text, "en")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "teh", got[0].Word)
	assert.Equal(t, 8, got[0].Offset)
	require.Len(t, engine.looked, 1)
	assert.Contains(t, engine.looked[0], "teh")
	assert.NotContains(t, engine.looked[0], "Teh", "each word is looked up once")
}

func TestCheckDefaultIgnoreList(t *testing.T) {
	engine := newFakeEngine(map[string][]string{"wordpress": {"word press"}, "shopify": {"shop"}})
	checker := NewChecker(engine)

	got, err := checker.Check(context.Background(), "We build WordPress and Shopify sites.", "en")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckIgnoreWordsCoverInflections(t *testing.T) {
	engine := newFakeEngine(map[string][]string{
		"acmecloud":  {},
		"acmeclouds": {},
		"frobnicate": {},
	})
	checker := NewChecker(engine, WithIgnoreWords("  AcmeCloud "))

	text := "AcmeCloud hosts all AcmeClouds. We frobnicate."
	got, err := checker.Check(context.Background(), text, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"frobnicate"}, words(got))

	checker.AddIgnoreWords("frobnicate")
	got, err = checker.Check(context.Background(), text, "en")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckIgnoreListIsPerInstance(t *testing.T) {
	engine := newFakeEngine(map[string][]string{"blorp": {}})
	first := NewChecker(engine)
	second := NewChecker(engine)

	first.AddIgnoreWords("blorp")

	got, err := first.Check(context.Background(), "blorp here", "en")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = second.Check(context.Background(), "blorp here", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"blorp"}, words(got))
}

func TestCheckPossessive(t *testing.T) {
	engine := newFakeEngine(map[string][]string{"acmee": {"acme"}})
	checker := NewChecker(engine)

	got, err := checker.Check(context.Background(), "Read Acmee's blog.", "en")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acmee", got[0].Word)
}

func TestCheckSkipsShortAndNumericTokens(t *testing.T) {
	engine := newFakeEngine(map[string][]string{"x": {}, "abc123": {}, "snake_case": {}})
	checker := NewChecker(engine)

	got, err := checker.Check(context.Background(), "x abc123 snake_case 2024", "en")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckLocaleVariants(t *testing.T) {
	checker := newTestChecker(t)
	for _, locale := range []string{"en", "en-US", "en-GB", "en_AU"} {
		_, err := checker.Check(context.Background(), "Our website.", locale)
		assert.NoError(t, err, locale)
	}
}

func TestCheckUnsupportedLocale(t *testing.T) {
	checker := newTestChecker(t)

	_, err := checker.Check(context.Background(), "Bonjour", "fr-FR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLocale))

	_, err = checker.Check(context.Background(), "Hello", "not a locale")
	assert.True(t, errors.Is(err, ErrUnsupportedLocale))
}

func TestCheckEngineUnavailable(t *testing.T) {
	engine := newFakeEngine(nil)
	engine.unavailable = true
	checker := NewChecker(engine)

	assert.False(t, checker.IsAvailable())
	_, err := checker.Check(context.Background(), "some text", "en")
	assert.True(t, errors.Is(err, ErrEngineUnavailable))

	got, err := checker.Check(context.Background(), "  ", "en")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestToIssues(t *testing.T) {
	issues := ToIssues([]Misspelling{{Word: "tset", Suggestions: []string{"test", "set"}, Offset: 10, Line: 1}})

	require.Len(t, issues, 1)
	assert.Equal(t, issue.CategorySpelling, issues[0].Category)
	assert.Equal(t, issue.SeverityError, issues[0].Severity)
	assert.Equal(t, "tset", issues[0].TextExcerpt)
	assert.Equal(t, "test or set", issues[0].Suggestion)
	assert.Equal(t, &issue.Position{Offset: 10, Line: 1}, issues[0].Position)
}

func TestToIssuesWithoutSuggestions(t *testing.T) {
	issues := ToIssues([]Misspelling{{Word: "qwzx", Suggestions: []string{}}})
	require.Len(t, issues, 1)
	assert.Empty(t, issues[0].Suggestion)
}

func TestCalculateScore(t *testing.T) {
	testCases := []struct {
		errors int
		want   int
	}{
		{errors: 0, want: 100},
		{errors: 1, want: 95},
		{errors: 5, want: 75},
		{errors: 10, want: 50},
		{errors: 15, want: 50},
		{errors: 100, want: 50},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, CalculateScore(100, tc.errors), "errors=%d", tc.errors)
	}

	prev := CalculateScore(100, 0)
	for n := 1; n <= 40; n++ {
		score := CalculateScore(100, n)
		assert.LessOrEqual(t, score, prev)
		assert.GreaterOrEqual(t, score, 50)
		prev = score
	}
}

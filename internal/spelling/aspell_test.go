package spelling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePipeOutput(t *testing.T) {
	out := []byte("@(#) International Ispell Version 3.1.20 (but really Aspell 0.60.8)\n" +
		"*\n\n" +
		"& websiet 7 0: website, websites, Webster, webbiest, web site, web-site, websit\n\n" +
		"# qwzxv 0\n\n" +
		"? colour 1 0: color\n\n")

	got := parsePipeOutput(out)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"website", "websites", "Webster", "webbiest", "web site"}, got["websiet"])
	assert.Equal(t, []string{}, got["qwzxv"])
	assert.Equal(t, []string{"color"}, got["colour"])
}

func TestParseDictList(t *testing.T) {
	dicts := parseDictList("en\nen_GB\nen_US\n\nen-variant_0\n")
	assert.Contains(t, dicts, "en_GB")
	assert.Len(t, dicts, 4)
}

func TestAspellEngineMissingBinary(t *testing.T) {
	engine := NewAspellEngine("/nonexistent/aspell-binary", nil)
	assert.False(t, engine.Available())
	assert.False(t, engine.Supports(Locale{Language: "en"}))

	_, err := engine.Lookup(context.Background(), Locale{Language: "en"}, []string{"word"})
	assert.ErrorIs(t, err, ErrEngineUnavailable)
}

func TestAspellEngineIntegration(t *testing.T) {
	engine := NewAspellEngine("aspell", nil)
	if !engine.Available() || !engine.Supports(Locale{Language: "en"}) {
		t.Skip("aspell with an English dictionary is not installed")
	}

	checker := NewChecker(engine)
	got, err := checker.Check(context.Background(), "Our websiet helps your compnay find new servises.", "en-US")
	require.NoError(t, err)

	flagged := words(got)
	assert.Contains(t, flagged, "websiet")
	assert.Contains(t, flagged, "compnay")
	assert.Contains(t, flagged, "servises")
}

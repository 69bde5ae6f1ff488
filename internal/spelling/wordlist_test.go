package spelling

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestOrdering(t *testing.T) {
	list := map[string]struct{}{"test": {}, "set": {}, "best": {}}
	assert.Equal(t, []string{"test", "set"}, suggest("tset", list))
}

func TestSuggestCapsResults(t *testing.T) {
	list := map[string]struct{}{}
	for _, w := range []string{"bat", "cat", "eat", "fat", "hat", "mat", "pat", "rat"} {
		list[w] = struct{}{}
	}
	assert.Len(t, suggest("zat", list), MaxSuggestions)
}

func TestNewWordListEngineFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.txt"), []byte("# english\nHello\nworld\n\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de_DE.txt"), []byte("hallo\nwelt\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a list"), 0o644))

	engine, err := NewWordListEngine(dir, nil)
	require.NoError(t, err)
	assert.True(t, engine.Available())
	assert.True(t, engine.Supports(Locale{Language: "en", Region: "GB"}))
	assert.True(t, engine.Supports(Locale{Language: "de", Region: "DE"}))
	assert.False(t, engine.Supports(Locale{Language: "de"}))

	flagged, err := engine.Lookup(context.Background(), Locale{Language: "en"}, []string{"hello", "wrold"})
	require.NoError(t, err)
	assert.NotContains(t, flagged, "hello")
	assert.Equal(t, []string{"world"}, flagged["wrold"])
}

func TestWordListEngineEmptyDirectoryIsUnavailable(t *testing.T) {
	engine, err := NewWordListEngine(t.TempDir(), nil)
	require.NoError(t, err)
	assert.False(t, engine.Available())
}

func TestWordListLookupUnsupportedLocale(t *testing.T) {
	engine, err := NewWordListEngineFromWords(map[string][]string{"en": {"hello"}})
	require.NoError(t, err)

	_, err = engine.Lookup(context.Background(), Locale{Language: "fr"}, []string{"bonjour"})
	assert.ErrorIs(t, err, ErrUnsupportedLocale)
}

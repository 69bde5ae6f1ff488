package spelling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.txt"), []byte("hello\nworld\n"), 0o644))

	t.Run("word list", func(t *testing.T) {
		engine, err := NewEngine(EngineWordList, "", dir, nil)
		require.NoError(t, err)
		assert.Equal(t, EngineWordList, engine.Name())
		assert.True(t, engine.Available())
	})

	t.Run("missing aspell falls back", func(t *testing.T) {
		engine, err := NewEngine(EngineAspell, "/nonexistent/aspell-binary", dir, nil)
		require.NoError(t, err)
		assert.Equal(t, EngineWordList, engine.Name())
	})

	t.Run("missing aspell without lists", func(t *testing.T) {
		engine, err := NewEngine(EngineAspell, "/nonexistent/aspell-binary", t.TempDir(), nil)
		require.NoError(t, err)
		assert.Equal(t, EngineAspell, engine.Name())
		assert.False(t, engine.Available())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewEngine("hunspell", "", dir, nil)
		assert.Error(t, err)
	})
}

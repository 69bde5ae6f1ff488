package spelling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{input: "en", want: "en"},
		{input: "en-US", want: "en_US"},
		{input: "en_GB", want: "en_GB"},
		{input: "EN-gb", want: "en_GB"},
		{input: " de-DE ", want: "de_DE"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			loc, err := ParseLocale(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, loc.String())
		})
	}
}

func TestParseLocaleRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "not a locale", "12-34"} {
		_, err := ParseLocale(input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrUnsupportedLocale), input)
	}
}

func TestLocaleCandidates(t *testing.T) {
	loc := Locale{Language: "en", Region: "AU"}
	assert.Equal(t, []string{"en_AU", "en"}, loc.candidates())
	assert.Equal(t, []string{"en"}, loc.Base().candidates())
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWord(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "upper with padding", in: "  UPPERCASE  ", want: "uppercase"},
		{name: "mixed case", in: "TestWord", want: "testword"},
		{name: "tabs and newlines", in: "\tAcmeCloud\n", want: "acmecloud"},
		{name: "empty", in: "   ", want: ""},
		{name: "already normal", in: "shopify", want: "shopify"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeWord(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, NormalizeWord(got), "normalization must be idempotent")
		})
	}
}

func TestDictionaryWordBeforeSave(t *testing.T) {
	w := &DictionaryWord{OrganizationID: 1, Word: "  TestWord "}
	assert.NoError(t, w.BeforeSave(nil))
	assert.Equal(t, "testword", w.Word)
	assert.Equal(t, SourceCustom, w.Source)
	assert.False(t, w.IsProjectScoped())
}

func TestValidSource(t *testing.T) {
	assert.True(t, ValidSource(SourceImported))
	assert.True(t, ValidSource(SourceScanSuggestion))
	assert.False(t, ValidSource("manual"))
}

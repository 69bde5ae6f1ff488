package issue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSeverity(t *testing.T) {
	assert.Equal(t, SeverityError, NormalizeSeverity("critical"))
	assert.Equal(t, SeverityInfo, NormalizeSeverity("low"))
	assert.Equal(t, SeverityWarning, NormalizeSeverity("medium"))
	assert.Equal(t, SeverityWarning, NormalizeSeverity(""))
}

func TestIssueJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Issue{
		Category:    CategorySpelling,
		Severity:    SeverityError,
		TextExcerpt: "tset",
		Suggestion:  "test or set",
		Position:    &Position{Offset: 10, Line: 1},
	})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "tset", raw["text_excerpt"])
	assert.Equal(t, "test or set", raw["suggestion"])
	assert.NotContains(t, raw, "message")
}

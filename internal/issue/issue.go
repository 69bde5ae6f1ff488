// Package issue defines the finding record shared by every content check.
package issue

// Category constants
const (
	CategorySpelling    = "spelling"
	CategoryGrammar     = "grammar"
	CategorySEO         = "seo"
	CategoryReadability = "readability"
)

// Severity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Position locates an issue in the analyzed text. Offset is a byte offset,
// Line is 1-based.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
}

type Issue struct {
	Category    string    `json:"category"`
	Severity    string    `json:"severity"`
	TextExcerpt string    `json:"text_excerpt"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Message     string    `json:"message,omitempty"`
	Position    *Position `json:"position,omitempty"`
}

// NormalizeSeverity maps free-form severities onto the known set.
// Anything unrecognized becomes a warning.
func NormalizeSeverity(s string) string {
	switch s {
	case SeverityError, "critical", "high":
		return SeverityError
	case SeverityInfo, "low", "suggestion":
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

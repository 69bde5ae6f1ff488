package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/siteproof/api/internal/issue"
)

// Check names accepted by Analyze.
const (
	CheckSpelling    = issue.CategorySpelling
	CheckGrammar     = issue.CategoryGrammar
	CheckSEO         = issue.CategorySEO
	CheckReadability = issue.CategoryReadability
)

// OverallScore is the synthesized key in Result.Scores.
const OverallScore = "overall"

var (
	ErrNoChecks     = errors.New("at least one check is required")
	ErrUnknownCheck = errors.New("unknown check")
)

// AllChecks lists every check in canonical order.
var AllChecks = []string{CheckSpelling, CheckGrammar, CheckSEO, CheckReadability}

// ParseChecks validates check names. Names are case-insensitive;
// duplicates collapse to the first occurrence.
func ParseChecks(names []string) ([]string, error) {
	checks := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if !isKnownCheck(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, raw)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		checks = append(checks, name)
	}
	if len(checks) == 0 {
		return nil, ErrNoChecks
	}
	return checks, nil
}

func isKnownCheck(name string) bool {
	for _, c := range AllChecks {
		if c == name {
			return true
		}
	}
	return false
}

// IsAIBacked reports whether the check is delegated to the reviewer.
func IsAIBacked(check string) bool {
	return check != CheckSpelling && isKnownCheck(check)
}

package spelling

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a language with an optional region, e.g. en or en_US.
type Locale struct {
	Language string
	Region   string
}

// ParseLocale accepts tags such as "en", "en-US", "en_gb" or "EN-us".
// Anything that is not a language[-region] tag yields ErrUnsupportedLocale.
func ParseLocale(raw string) (Locale, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
	if cleaned == "" {
		return Locale{}, fmt.Errorf("%w: empty locale", ErrUnsupportedLocale)
	}

	tag, err := language.Parse(cleaned)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, raw, err)
	}

	base, _, region := tag.Raw()
	loc := Locale{Language: base.String()}
	if region.String() != "ZZ" {
		loc.Region = region.String()
	}
	if loc.Language == "und" {
		return Locale{}, fmt.Errorf("%w: %q has no language", ErrUnsupportedLocale, raw)
	}
	return loc, nil
}

// String returns the dictionary-style name: "en_US" or "en".
func (l Locale) String() string {
	if l.Region == "" {
		return l.Language
	}
	return l.Language + "_" + l.Region
}

// Base drops the region.
func (l Locale) Base() Locale {
	return Locale{Language: l.Language}
}

// candidates lists dictionary names to try, most specific first.
func (l Locale) candidates() []string {
	if l.Region == "" {
		return []string{l.Language}
	}
	return []string{l.String(), l.Language}
}

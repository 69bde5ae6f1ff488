package spelling

import (
	"regexp"
	"strings"
	"unicode"
)

// Token is a word-like run of text.
type Token struct {
	Text   string
	Offset int
	Line   int
}

var (
	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:['’][\p{L}\p{N}_]+)*`)

	urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|ftp://|www\.)[^\s<>"'()\[\]]+` +
		`|\b(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+(?:com|org|net|io|co|dev|app|ai|edu|gov|info|biz|me|us|uk|de|fr|ca|au|nl|eu)\b(?:/[^\s<>"'()]*)?`)

	emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
)

// tokenize splits text into word tokens with byte offsets and 1-based
// line numbers. Tokens containing digits or underscores are dropped.
func tokenize(text string) []Token {
	matches := wordPattern.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(matches))

	line := 1
	cursor := 0
	for _, m := range matches {
		line += strings.Count(text[cursor:m[0]], "\n")
		cursor = m[0]

		word := text[m[0]:m[1]]
		if strings.IndexFunc(word, func(r rune) bool { return unicode.IsDigit(r) || r == '_' }) >= 0 {
			continue
		}
		tokens = append(tokens, Token{Text: word, Offset: m[0], Line: line})
	}
	return tokens
}

type span struct {
	start, end int
}

// exclusions holds URL and e-mail spans found in a text.
type exclusions struct {
	spans []span
	texts []string
}

func findExclusions(text string) exclusions {
	var ex exclusions
	for _, pattern := range []*regexp.Regexp{urlPattern, emailPattern} {
		for _, m := range pattern.FindAllStringIndex(text, -1) {
			ex.spans = append(ex.spans, span{start: m[0], end: m[1]})
			ex.texts = append(ex.texts, strings.ToLower(text[m[0]:m[1]]))
		}
	}
	return ex
}

// covers reports whether a token lies inside a URL or e-mail address, or
// whether its text appears within one anywhere in the document.
func (ex exclusions) covers(tok Token, normalized string) bool {
	end := tok.Offset + len(tok.Text)
	for _, s := range ex.spans {
		if tok.Offset < s.end && end > s.start {
			return true
		}
	}
	for _, t := range ex.texts {
		if strings.Contains(t, normalized) {
			return true
		}
	}
	return false
}

// lookupForm strips a trailing possessive so "Acme's" is checked as "Acme".
func lookupForm(word string) string {
	for _, suffix := range []string{"'s", "’s", "'S", "’S"} {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

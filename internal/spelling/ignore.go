package spelling

import (
	"strings"
)

// DefaultIgnoreWords are technology and brand names that regularly show
// up in website copy and are missing from general dictionaries.
var DefaultIgnoreWords = []string{
	"wordpress", "woocommerce", "shopify", "magento", "drupal", "joomla", "wix", "squarespace", "webflow",
	"javascript", "typescript", "nodejs", "php", "html", "css", "json", "api", "apis", "sdk", "url", "urls",
	"laravel", "symfony", "django", "rails", "react", "reactjs", "vue", "vuejs", "nextjs", "nuxt", "angular", "svelte",
	"tailwind", "bootstrap", "jquery", "graphql", "kubernetes", "docker", "github", "gitlab", "bitbucket",
	"aws", "azure", "gcp", "cloudflare", "vercel", "netlify", "heroku", "stripe", "paypal", "hubspot", "salesforce",
	"mailchimp", "zapier", "slack", "linkedin", "youtube", "instagram", "tiktok", "facebook", "google", "seo",
	"saas", "ecommerce", "wcag", "vpat", "ux", "ui", "faq", "faqs", "ios", "android", "iphone", "ipad", "macos",
	"chatgpt", "openai", "dropbox", "figma", "notion", "trello", "jira", "whatsapp", "gmail", "analytics",
}

var defaultIgnoreSet = buildIgnoreSet(DefaultIgnoreWords)

func buildIgnoreSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words)*8)
	for _, w := range words {
		addWithInflections(set, w)
	}
	return set
}

func addWithInflections(set map[string]struct{}, word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	for v := range inflections(word) {
		set[v] = struct{}{}
	}
}

// inflections creates the regular inflected forms of a word, so a custom
// dictionary entry also covers its plural, past and progressive forms.
// Only the spelling English actually uses is generated; "house" covers
// "houses" and "housed" but not "housees" or "houseed".
func inflections(word string) map[string]bool {
	forms := make(map[string]bool)
	forms[word] = true

	// Plurals
	switch {
	case takesES(word):
		forms[word+"es"] = true
	case strings.HasSuffix(word, "y") && len(word) >= 2 && isConsonant(word[len(word)-2]):
		forms[word[:len(word)-1]+"ies"] = true
	default:
		forms[word+"s"] = true
	}

	// Verb forms (-ed, -ing)
	switch {
	case strings.HasSuffix(word, "e"):
		forms[word+"d"] = true
		if len(word) > 2 && !strings.HasSuffix(word, "ee") {
			forms[word[:len(word)-1]+"ing"] = true
		} else {
			forms[word+"ing"] = true
		}
	case strings.HasSuffix(word, "y") && len(word) >= 2 && isConsonant(word[len(word)-2]):
		forms[word[:len(word)-1]+"ied"] = true
		forms[word+"ing"] = true
	case isCVC(word):
		// ship -> shipped, shipping; the undoubled forms are kept for
		// words stressed on the first syllable (target -> targeted)
		doubled := word + string(word[len(word)-1])
		forms[doubled+"ed"] = true
		forms[doubled+"ing"] = true
		forms[word+"ed"] = true
		forms[word+"ing"] = true
	default:
		forms[word+"ed"] = true
		forms[word+"ing"] = true
	}

	return forms
}

// takesES reports whether the plural of word ends in -es.
func takesES(word string) bool {
	for _, suffix := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

// isCVC reports whether word ends consonant-vowel-consonant, the shape
// whose final consonant doubles before -ed and -ing. w, x and y never
// double.
func isCVC(word string) bool {
	n := len(word)
	if n < 3 {
		return false
	}
	last := word[n-1]
	if last == 'w' || last == 'x' || last == 'y' {
		return false
	}
	return isConsonant(last) && isVowel(word[n-2]) && isConsonant(word[n-3])
}

func isVowel(c byte) bool {
	return c == 'a' || c == 'e' || c == 'i' || c == 'o' || c == 'u'
}

func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}

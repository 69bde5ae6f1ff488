package spelling

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// MaxSuggestions caps how many corrections are returned per word.
const MaxSuggestions = 5

// WordListEngine checks words against plain-text dictionaries, one file
// per locale (en.txt, en_GB.txt, ...). Suggestions are dictionary words
// one edit away from the misspelling.
type WordListEngine struct {
	lists  map[string]map[string]struct{}
	mu     sync.RWMutex
	logger hclog.Logger
}

// NewWordListEngine loads every *.txt file in dir. The file stem is the
// locale the list serves.
func NewWordListEngine(dir string, logger hclog.Logger) (*WordListEngine, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	e := &WordListEngine{
		lists:  make(map[string]map[string]struct{}),
		logger: logger,
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list dictionaries in %s: %w", dir, err)
	}
	for _, path := range paths {
		stem := strings.TrimSuffix(filepath.Base(path), ".txt")
		loc, err := ParseLocale(stem)
		if err != nil {
			logger.Warn("skipping dictionary with unrecognized locale", "path", path)
			continue
		}
		if err := e.loadWordList(loc, path); err != nil {
			return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
		}
	}
	return e, nil
}

// NewWordListEngineFromWords builds an engine from in-memory lists keyed
// by locale tag.
func NewWordListEngineFromWords(lists map[string][]string) (*WordListEngine, error) {
	e := &WordListEngine{
		lists:  make(map[string]map[string]struct{}),
		logger: hclog.NewNullLogger(),
	}
	for tag, words := range lists {
		loc, err := ParseLocale(tag)
		if err != nil {
			return nil, err
		}
		e.AddWords(loc, words...)
	}
	return e, nil
}

func (e *WordListEngine) loadWordList(loc Locale, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	e.AddWords(loc, words...)
	e.logger.Info("loaded dictionary", "locale", loc.String(), "words", len(words))
	return nil
}

// AddWords extends the list for a locale.
func (e *WordListEngine) AddWords(loc Locale, words ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	list, ok := e.lists[loc.String()]
	if !ok {
		list = make(map[string]struct{}, len(words))
		e.lists[loc.String()] = list
	}
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			list[w] = struct{}{}
		}
	}
}

func (e *WordListEngine) Name() string { return "wordlist" }

// Available reports whether at least one word list is loaded.
func (e *WordListEngine) Available() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.lists) > 0
}

func (e *WordListEngine) Supports(loc Locale) bool {
	_, ok := e.resolve(loc)
	return ok
}

func (e *WordListEngine) resolve(loc Locale) (map[string]struct{}, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, name := range loc.candidates() {
		if list, ok := e.lists[name]; ok {
			return list, true
		}
	}
	return nil, false
}

// Lookup returns the words missing from the list for loc, each with up
// to MaxSuggestions one-edit corrections.
func (e *WordListEngine) Lookup(ctx context.Context, loc Locale, words []string) (map[string][]string, error) {
	list, ok := e.resolve(loc)
	if !ok {
		return nil, fmt.Errorf("%w: no word list for %s", ErrUnsupportedLocale, loc)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make(map[string][]string)
	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lower := strings.ToLower(word)
		if _, known := list[lower]; known {
			continue
		}
		result[word] = suggest(lower, list)
	}
	return result, nil
}

// suggest returns dictionary words one edit away, ordered transposes,
// deletes, replacements, insertions.
func suggest(word string, list map[string]struct{}) []string {
	runes := []rune(word)
	seen := make(map[string]struct{})
	suggestions := make([]string, 0, MaxSuggestions)

	add := func(candidate string) bool {
		if candidate == word {
			return false
		}
		if _, ok := seen[candidate]; ok {
			return false
		}
		seen[candidate] = struct{}{}
		if _, ok := list[candidate]; ok {
			suggestions = append(suggestions, candidate)
		}
		return len(suggestions) >= MaxSuggestions
	}

	for i := 0; i+1 < len(runes); i++ {
		c := append([]rune{}, runes...)
		c[i], c[i+1] = c[i+1], c[i]
		if add(string(c)) {
			return suggestions
		}
	}

	for i := range runes {
		c := append(append([]rune{}, runes[:i]...), runes[i+1:]...)
		if add(string(c)) {
			return suggestions
		}
	}

	alphabet := alphabetFor(runes)
	for i := range runes {
		for _, r := range alphabet {
			if r == runes[i] {
				continue
			}
			c := append([]rune{}, runes...)
			c[i] = r
			if add(string(c)) {
				return suggestions
			}
		}
	}

	for i := 0; i <= len(runes); i++ {
		for _, r := range alphabet {
			c := make([]rune, 0, len(runes)+1)
			c = append(c, runes[:i]...)
			c = append(c, r)
			c = append(c, runes[i:]...)
			if add(string(c)) {
				return suggestions
			}
		}
	}

	return suggestions
}

// alphabetFor is a-z plus any other letters that appear in the word, so
// accented words still get candidates.
func alphabetFor(word []rune) []rune {
	alphabet := make([]rune, 0, 32)
	for r := 'a'; r <= 'z'; r++ {
		alphabet = append(alphabet, r)
	}
	for _, r := range word {
		if r > 'z' {
			alphabet = append(alphabet, r)
		}
	}
	return alphabet
}

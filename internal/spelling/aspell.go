package spelling

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// AspellEngine drives the aspell binary in ispell pipe mode. One process
// is spawned per Lookup call.
type AspellEngine struct {
	path    string
	timeout time.Duration
	logger  hclog.Logger

	probeOnce sync.Once
	dicts     map[string]struct{}
	probeErr  error
}

// NewAspellEngine returns an engine that runs the aspell binary at path.
// The binary is probed lazily on first use.
func NewAspellEngine(path string, logger hclog.Logger) *AspellEngine {
	if path == "" {
		path = "aspell"
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AspellEngine{
		path:    path,
		timeout: 30 * time.Second,
		logger:  logger,
	}
}

func (e *AspellEngine) Name() string { return "aspell" }

// Available probes the binary once and caches the installed dictionaries.
func (e *AspellEngine) Available() bool {
	e.probe()
	return e.probeErr == nil && len(e.dicts) > 0
}

func (e *AspellEngine) probe() {
	e.probeOnce.Do(func() {
		if _, err := exec.LookPath(e.path); err != nil {
			e.probeErr = err
			e.logger.Warn("aspell binary not found", "path", e.path)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		out, err := exec.CommandContext(ctx, e.path, "dicts").Output()
		if err != nil {
			e.probeErr = fmt.Errorf("failed to list aspell dictionaries: %w", err)
			e.logger.Warn("aspell probe failed", "error", err)
			return
		}
		e.dicts = parseDictList(string(out))
		e.logger.Info("aspell ready", "dictionaries", len(e.dicts))
	})
}

func parseDictList(out string) map[string]struct{} {
	dicts := make(map[string]struct{})
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			dicts[name] = struct{}{}
		}
	}
	return dicts
}

// Supports reports whether an aspell dictionary is installed for loc or
// its base language.
func (e *AspellEngine) Supports(loc Locale) bool {
	return e.dictFor(loc) != ""
}

func (e *AspellEngine) dictFor(loc Locale) string {
	e.probe()
	for _, name := range loc.candidates() {
		if _, ok := e.dicts[name]; ok {
			return name
		}
	}
	return ""
}

// Lookup pipes words through `aspell -a` and returns the misspelled ones
// with aspell's suggestions.
func (e *AspellEngine) Lookup(ctx context.Context, loc Locale, words []string) (map[string][]string, error) {
	if !e.Available() {
		return nil, ErrEngineUnavailable
	}
	dict := e.dictFor(loc)
	if dict == "" {
		return nil, fmt.Errorf("%w: no aspell dictionary for %s", ErrUnsupportedLocale, loc)
	}
	if len(words) == 0 {
		return map[string][]string{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var stdin bytes.Buffer
	for _, w := range words {
		// "^" escapes the line so aspell treats it as text, not a command.
		stdin.WriteString("^" + w + "\n")
	}

	cmd := exec.CommandContext(ctx, e.path, "-a", "--lang="+dict, "--encoding=utf-8")
	cmd.Stdin = &stdin
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("aspell failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parsePipeOutput(out), nil
}

// parsePipeOutput reads ispell-style results:
//
//   - correct
//     & word 3 0: a, b, c     misspelled with suggestions
//     ? word 0 0: a           guess
//     # word 0                misspelled, nothing to suggest
func parsePipeOutput(out []byte) map[string][]string {
	result := make(map[string][]string)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		switch line[0] {
		case '&', '?':
			head, tail, _ := strings.Cut(line, ":")
			fields := strings.Fields(head)
			if len(fields) < 2 {
				continue
			}
			var suggestions []string
			for _, s := range strings.Split(tail, ",") {
				if s = strings.TrimSpace(s); s != "" {
					suggestions = append(suggestions, s)
				}
			}
			if len(suggestions) > MaxSuggestions {
				suggestions = suggestions[:MaxSuggestions]
			}
			result[fields[1]] = suggestions
		case '#':
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				result[fields[1]] = []string{}
			}
		}
	}
	return result
}

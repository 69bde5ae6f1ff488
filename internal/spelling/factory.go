package spelling

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Engine kinds
const (
	EngineAspell   = "aspell"
	EngineWordList = "wordlist"
)

// NewEngine builds the configured engine. An aspell engine that turns out
// to be unusable falls back to the word lists in dictDir when any exist.
func NewEngine(kind, aspellPath, dictDir string, logger hclog.Logger) (Engine, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	switch kind {
	case EngineWordList:
		return NewWordListEngine(dictDir, logger.Named(EngineWordList))
	case EngineAspell, "":
		aspell := NewAspellEngine(aspellPath, logger.Named(EngineAspell))
		if aspell.Available() || dictDir == "" {
			return aspell, nil
		}
		wl, err := NewWordListEngine(dictDir, logger.Named(EngineWordList))
		if err != nil || !wl.Available() {
			// keep aspell so callers see it as unavailable rather than failing startup
			return aspell, nil
		}
		logger.Warn("aspell unavailable, using bundled word lists", "dir", dictDir)
		return wl, nil
	default:
		return nil, fmt.Errorf("unknown spell engine %q", kind)
	}
}

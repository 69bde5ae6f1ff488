// Package ai runs the content checks that need a language model.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/issue"
	"github.com/siteproof/api/internal/llm"
)

var ErrUnsupportedCheck = errors.New("check is not handled by the reviewer")

// Request asks for one check over content.
type Request struct {
	Check    string
	Content  string
	Language string
	Deep     bool
}

// Review is a reviewer's verdict: a 0-100 score and its findings.
type Review struct {
	Score  int
	Issues []issue.Issue
}

// Reviewer scores content for one check. Implementations may be slow and
// may fail; callers treat a failure as that check's failure only.
type Reviewer interface {
	Review(ctx context.Context, req Request) (*Review, error)
}

// Generator is the slice of llm.Client the reviewer needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMReviewer reviews content by prompting a language model.
type LLMReviewer struct {
	llm    Generator
	logger hclog.Logger
}

// NewLLMReviewer returns a reviewer that prompts g.
func NewLLMReviewer(g Generator, logger hclog.Logger) *LLMReviewer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LLMReviewer{llm: g, logger: logger}
}

type reviewResponse struct {
	Score  *float64 `json:"score"`
	Issues []struct {
		Severity    string `json:"severity"`
		TextExcerpt string `json:"text_excerpt"`
		Suggestion  string `json:"suggestion"`
		Message     string `json:"message"`
	} `json:"issues"`
}

// Review prompts the model for req.Check and parses its JSON answer.
// Scores are clamped to 0-100 and issues take the requested category.
func (r *LLMReviewer) Review(ctx context.Context, req Request) (*Review, error) {
	language := req.Language
	if language == "" {
		language = "en"
	}
	prompt, ok := llm.ReviewPrompt(req.Check, language, req.Content, req.Deep)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCheck, req.Check)
	}

	start := time.Now()
	raw, err := r.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s review failed: %w", req.Check, err)
	}

	jsonStr, err := llm.ExtractJSON(raw)
	if err != nil {
		r.logger.Warn("unparseable review response", "check", req.Check, "response", preview(raw))
		return nil, fmt.Errorf("%s review: %w", req.Check, err)
	}

	var parsed reviewResponse
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, fmt.Errorf("%s review: failed to decode response: %w", req.Check, err)
	}
	if parsed.Score == nil {
		return nil, fmt.Errorf("%s review: response has no score", req.Check)
	}

	review := &Review{
		Score:  clampScore(*parsed.Score),
		Issues: make([]issue.Issue, 0, len(parsed.Issues)),
	}
	for _, it := range parsed.Issues {
		excerpt := strings.TrimSpace(it.TextExcerpt)
		if excerpt == "" && it.Message == "" {
			continue
		}
		review.Issues = append(review.Issues, issue.Issue{
			Category:    req.Check,
			Severity:    issue.NormalizeSeverity(strings.ToLower(strings.TrimSpace(it.Severity))),
			TextExcerpt: excerpt,
			Suggestion:  strings.TrimSpace(it.Suggestion),
			Message:     strings.TrimSpace(it.Message),
		})
	}

	r.logger.Debug("review complete",
		"check", req.Check,
		"deep", req.Deep,
		"score", review.Score,
		"issues", len(review.Issues),
		"duration", time.Since(start))
	return review, nil
}

func clampScore(score float64) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return int(score + 0.5)
}

func preview(s string) string {
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}

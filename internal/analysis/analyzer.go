// Package analysis runs content checks and merges their findings into one
// scored result.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/siteproof/api/internal/ai"
	"github.com/siteproof/api/internal/dictionary"
	"github.com/siteproof/api/internal/issue"
	"github.com/siteproof/api/internal/model"
	"github.com/siteproof/api/internal/spelling"
)

var (
	ErrNoReviewer = errors.New("no reviewer configured")
	ErrNoResolver = errors.New("no dictionary resolver configured")
)

// DictionaryResolver returns the words a project excludes from spell checks.
type DictionaryResolver interface {
	ApplicableWords(ctx context.Context, project *model.Project) (dictionary.WordSet, error)
}

// Request describes one analysis. Language falls back to the analyzer's
// default locale when empty.
type Request struct {
	Content      string
	Checks       []string
	DeepAnalysis bool
	Language     string
	// Project is optional; when set its dictionary words are not flagged.
	Project *model.Project
}

// Result is the merged outcome. A failed check is absent from Scores and
// present in Failures.
type Result struct {
	// Language is the locale the checks ran with, after defaults.
	Language string            `json:"language"`
	Issues   []issue.Issue     `json:"issues"`
	Scores   map[string]int    `json:"scores"`
	Failures map[string]string `json:"failures,omitempty"`

	errs *multierror.Error
}

// Err returns every check failure, or nil.
func (r *Result) Err() error {
	return r.errs.ErrorOrNil()
}

func (r *Result) fail(check string, err error) {
	if r.Failures == nil {
		r.Failures = make(map[string]string)
	}
	r.Failures[check] = err.Error()
	r.errs = multierror.Append(r.errs, fmt.Errorf("%s: %w", check, err))
}

// Analyzer runs spelling locally and delegates the other checks to a
// Reviewer. It is safe for concurrent use; per-request state lives in a
// fresh spelling.Checker.
type Analyzer struct {
	engine        spelling.Engine
	resolver      DictionaryResolver
	reviewer      ai.Reviewer
	ignoreWords   []string
	weights       map[string]float64
	defaultLocale string
	logger        hclog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithResolver supplies project dictionaries to the spelling check.
func WithResolver(r DictionaryResolver) Option {
	return func(a *Analyzer) { a.resolver = r }
}

// WithReviewer sets the collaborator for grammar, seo and readability.
func WithReviewer(r ai.Reviewer) Option {
	return func(a *Analyzer) { a.reviewer = r }
}

// WithIgnoreWords adds words every spelling check skips, on top of the
// checker's built-in list.
func WithIgnoreWords(words ...string) Option {
	return func(a *Analyzer) { a.ignoreWords = append(a.ignoreWords, words...) }
}

// WithScoreWeights switches the overall score to a weighted mean. Checks
// missing from the map weigh 1.
func WithScoreWeights(weights map[string]float64) Option {
	return func(a *Analyzer) { a.weights = weights }
}

// WithDefaultLocale sets the locale used when a request names none.
func WithDefaultLocale(locale string) Option {
	return func(a *Analyzer) { a.defaultLocale = locale }
}

func WithLogger(logger hclog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New returns an analyzer over engine with default locale "en". Checks
// that need a missing resolver or reviewer fail at analysis time.
func New(engine spelling.Engine, opts ...Option) *Analyzer {
	a := &Analyzer{
		engine:        engine,
		defaultLocale: "en",
		logger:        hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the requested checks. The returned error covers invalid
// requests only; individual check failures are reported through
// Result.Failures and Result.Err.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	checks, err := ParseChecks(req.Checks)
	if err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = a.defaultLocale
	}

	result := &Result{
		Language: language,
		Issues:   []issue.Issue{},
		Scores:   make(map[string]int, len(checks)+1),
	}

	// spelling findings come first regardless of request order
	for _, check := range checks {
		if check == CheckSpelling {
			a.run(result, check, func() ([]issue.Issue, int, error) {
				return a.checkSpelling(ctx, req, language)
			})
		}
	}
	for _, check := range checks {
		if check == CheckSpelling {
			continue
		}
		check := check
		a.run(result, check, func() ([]issue.Issue, int, error) {
			return a.review(ctx, req, check, language)
		})
	}

	if overall, ok := a.overall(result.Scores); ok {
		result.Scores[OverallScore] = overall
	}

	a.logger.Info("analysis complete",
		"checks", checks,
		"deep", req.DeepAnalysis,
		"issues", len(result.Issues),
		"failed", len(result.Failures))
	return result, nil
}

func (a *Analyzer) run(result *Result, check string, fn func() ([]issue.Issue, int, error)) {
	start := time.Now()
	issues, score, err := fn()
	recordCheck(check, err, time.Since(start))
	if err != nil {
		a.logger.Warn("check failed", "check", check, "error", err)
		result.fail(check, err)
		return
	}
	result.Issues = append(result.Issues, issues...)
	result.Scores[check] = score
}

func (a *Analyzer) checkSpelling(ctx context.Context, req Request, language string) ([]issue.Issue, int, error) {
	checker := spelling.NewChecker(a.engine,
		spelling.WithIgnoreWords(a.ignoreWords...),
		spelling.WithLogger(a.logger.Named("spelling")))

	if req.Project != nil {
		if a.resolver == nil {
			return nil, 0, ErrNoResolver
		}
		words, err := a.resolver.ApplicableWords(ctx, req.Project)
		if err != nil {
			return nil, 0, err
		}
		checker.AddIgnoreWords(words.Words()...)
	}

	misspellings, err := checker.Check(ctx, req.Content, language)
	if err != nil {
		return nil, 0, err
	}
	misspellingsTotal.Add(float64(len(misspellings)))

	return spelling.ToIssues(misspellings), spelling.CalculateScore(100, len(misspellings)), nil
}

func (a *Analyzer) review(ctx context.Context, req Request, check, language string) ([]issue.Issue, int, error) {
	if a.reviewer == nil {
		return nil, 0, ErrNoReviewer
	}
	review, err := a.reviewer.Review(ctx, ai.Request{
		Check:    check,
		Content:  req.Content,
		Language: language,
		Deep:     req.DeepAnalysis,
	})
	if err != nil {
		return nil, 0, err
	}

	issues := make([]issue.Issue, 0, len(review.Issues))
	for _, it := range review.Issues {
		it.Category = check
		issues = append(issues, it)
	}
	return issues, review.Score, nil
}

// overall is the rounded mean of the computed scores, weighted when
// weights are configured.
func (a *Analyzer) overall(scores map[string]int) (int, bool) {
	var sum, total float64
	for _, check := range AllChecks {
		score, ok := scores[check]
		if !ok {
			continue
		}
		w := 1.0
		if a.weights != nil {
			if cw, ok := a.weights[check]; ok {
				w = cw
			}
		}
		sum += w * float64(score)
		total += w
	}
	if total == 0 {
		if len(scores) == 0 {
			return 0, false
		}
		// every computed check weighs zero
		for _, score := range scores {
			sum += float64(score)
		}
		total = float64(len(scores))
	}
	return int(math.Round(sum / total)), true
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/siteproof/api/internal/ai"
	"github.com/siteproof/api/internal/analysis"
	"github.com/siteproof/api/internal/config"
	"github.com/siteproof/api/internal/extract"
	"github.com/siteproof/api/internal/httpclient"
	"github.com/siteproof/api/internal/issue"
	"github.com/siteproof/api/internal/llm"
	"github.com/siteproof/api/internal/logger"
	"github.com/siteproof/api/internal/spelling"
)

var errAuditFailed = errors.New("one or more targets failed")

// checkOptions holds the arguments for the check command.
type checkOptions struct {
	Files        []string
	URLs         []string
	Checks       []string
	Locale       string
	DictDir      string
	Engine       string
	AspellPath   string
	Ignore       []string
	Workers      int
	Deep         bool
	AllowPrivate bool
	Output       string
}

const exampleCheckUsage = `  # Spell check two local files
  audit check --file about.txt --file pricing.md

  # Run every check against a live page, deep AI analysis
  audit check --url https://example.com --checks spelling,grammar,seo,readability --deep

  # Use the bundled word lists and write the report to a file
  audit check --engine wordlist --dict-dir data/dictionaries --file copy.txt --output report.json`

// target is one unit of work: a file or a URL.
type target struct {
	Name  string
	IsURL bool
}

type TargetResult struct {
	Target   string            `json:"target"`
	Title    string            `json:"title,omitempty"`
	Issues   []issue.Issue     `json:"issues"`
	Scores   map[string]int    `json:"scores,omitempty"`
	Failures map[string]string `json:"failures,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func (r TargetResult) failed() bool {
	return r.Error != "" || len(r.Failures) > 0
}

type Summary struct {
	Targets          int            `json:"targets"`
	Failed           int            `json:"failed"`
	Issues           int            `json:"issues"`
	IssuesByCategory map[string]int `json:"issues_by_category"`
	Elapsed          string         `json:"elapsed"`
}

type Report struct {
	Summary Summary        `json:"summary"`
	Targets []TargetResult `json:"targets"`
}

type contentAnalyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error)
}

type pageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*extract.Page, error)
}

// auditor fans targets out to a fixed pool of workers.
type auditor struct {
	analyzer contentAnalyzer
	fetcher  pageFetcher
	readFile func(string) ([]byte, error)
	workers  int
	logger   hclog.Logger
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:                   "check {--file PATH | --url URL}... [--checks LIST] [--workers N] [--output PATH]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Example:               exampleCheckUsage,
		Short:                 "Checks files and pages and writes a JSON report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Files, "file", "f", nil, "Path to a text file to check. Repeatable.")
	cmd.Flags().StringArrayVarP(&opts.URLs, "url", "u", nil, "URL of a page to fetch and check. Repeatable.")
	cmd.Flags().StringSliceVarP(&opts.Checks, "checks", "c", []string{analysis.CheckSpelling}, "Checks to run (spelling, grammar, seo, readability).")
	cmd.Flags().StringVarP(&opts.Locale, "locale", "l", "", "Content locale (default from DEFAULT_LOCALE).")
	cmd.Flags().StringVar(&opts.DictDir, "dict-dir", "", "Directory of word lists (default from DICTIONARY_DIR).")
	cmd.Flags().StringVar(&opts.Engine, "engine", "", "Spell engine: aspell or wordlist (default from SPELL_ENGINE).")
	cmd.Flags().StringVar(&opts.AspellPath, "aspell-path", "", "Path to the aspell binary (default from ASPELL_PATH).")
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, "Extra words the spelling check skips.")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "j", 4, "Number of concurrent workers.")
	cmd.Flags().BoolVar(&opts.Deep, "deep", false, "Use the deep AI analysis prompts.")
	cmd.Flags().BoolVar(&opts.AllowPrivate, "allow-private", false, "Allow fetching loopback and private network URLs, e.g. a local staging site.")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "Report path, - for stdout.")
	return cmd
}

func runCheck(ctx context.Context, opts *checkOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	targets := collectTargets(opts)
	if len(targets) == 0 {
		return errors.New("nothing to check: pass --file or --url")
	}
	checks, err := analysis.ParseChecks(opts.Checks)
	if err != nil {
		return err
	}
	opts.Checks = checks

	cfg := config.Load()
	applyConfigDefaults(opts, cfg)
	log := logger.NewWithOutput("audit", cfg.LogLevel, os.Stderr)

	engine, err := spelling.NewEngine(opts.Engine, opts.AspellPath, opts.DictDir, log.Named("spelling"))
	if err != nil {
		return err
	}

	analyzerOpts := []analysis.Option{
		analysis.WithIgnoreWords(opts.Ignore...),
		analysis.WithScoreWeights(cfg.ScoreWeights),
		analysis.WithDefaultLocale(opts.Locale),
		analysis.WithLogger(log.Named("analysis")),
	}
	if needsReviewer(checks) {
		llmClient := llm.NewClient(cfg.LLMURL, cfg.LLMModel, httpclient.New(log.Named("llm"), httpclient.Options{
			Timeout:    cfg.LLMTimeout,
			RetryCount: cfg.LLMRetries,
		}))
		analyzerOpts = append(analyzerOpts, analysis.WithReviewer(ai.NewLLMReviewer(llmClient, log.Named("reviewer"))))
	}

	fetchOpts := httpclient.Defaults()
	fetchOpts.PublicOnly = !opts.AllowPrivate

	a := &auditor{
		analyzer: analysis.New(engine, analyzerOpts...),
		fetcher:  extract.NewExtractor(httpclient.New(log.Named("fetch"), fetchOpts), log.Named("fetch")),
		readFile: os.ReadFile,
		workers:  opts.Workers,
		logger:   log,
	}

	log.Info("auditing targets", "targets", len(targets), "workers", opts.Workers, "checks", checks, "engine", engine.Name())
	report := a.run(ctx, targets, opts)

	if err := writeReport(report, opts.Output, stdout); err != nil {
		return err
	}
	log.Info("audit complete",
		"targets", report.Summary.Targets,
		"failed", report.Summary.Failed,
		"issues", report.Summary.Issues,
		"elapsed", report.Summary.Elapsed)

	if report.Summary.Failed > 0 {
		return errAuditFailed
	}
	return nil
}

func collectTargets(opts *checkOptions) []target {
	var targets []target
	for _, f := range opts.Files {
		if f = strings.TrimSpace(f); f != "" {
			targets = append(targets, target{Name: f})
		}
	}
	for _, u := range opts.URLs {
		if u = strings.TrimSpace(u); u != "" {
			targets = append(targets, target{Name: u, IsURL: true})
		}
	}
	return targets
}

func applyConfigDefaults(opts *checkOptions, cfg *config.Config) {
	if opts.Locale == "" {
		opts.Locale = cfg.DefaultLocale
	}
	if opts.DictDir == "" {
		opts.DictDir = cfg.DictionaryDir
	}
	if opts.Engine == "" {
		opts.Engine = cfg.SpellEngine
	}
	if opts.AspellPath == "" {
		opts.AspellPath = cfg.AspellPath
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
}

func needsReviewer(checks []string) bool {
	for _, c := range checks {
		if analysis.IsAIBacked(c) {
			return true
		}
	}
	return false
}

// run checks every target and returns the results in input order.
func (a *auditor) run(ctx context.Context, targets []target, opts *checkOptions) *Report {
	workers := a.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(targets) {
		workers = len(targets)
	}

	startTime := time.Now()
	results := make([]TargetResult, len(targets))
	jobs := make(chan int, workers*2)

	var processed int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = a.checkTarget(ctx, targets[idx], opts)
				p := atomic.AddInt64(&processed, 1)
				a.logger.Debug("target checked", "target", targets[idx].Name, "progress", fmt.Sprintf("%d/%d", p, len(targets)))
			}
		}()
	}

	for i := range targets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return buildReport(results, time.Since(startTime))
}

func (a *auditor) checkTarget(ctx context.Context, t target, opts *checkOptions) TargetResult {
	res := TargetResult{Target: t.Name, Issues: []issue.Issue{}}

	var content string
	if t.IsURL {
		page, err := a.fetcher.Fetch(ctx, t.Name)
		if err != nil {
			res.Error = err.Error()
			a.logger.Warn("failed to fetch page", "url", t.Name, "error", err)
			return res
		}
		res.Title = page.Title
		content = page.Text
	} else {
		data, err := a.readFile(t.Name)
		if err != nil {
			res.Error = err.Error()
			a.logger.Warn("failed to read file", "path", t.Name, "error", err)
			return res
		}
		content = string(data)
	}

	result, err := a.analyzer.Analyze(ctx, analysis.Request{
		Content:      content,
		Checks:       opts.Checks,
		DeepAnalysis: opts.Deep,
		Language:     opts.Locale,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Issues = result.Issues
	res.Scores = result.Scores
	res.Failures = result.Failures
	if err := result.Err(); err != nil {
		a.logger.Warn("checks failed", "target", t.Name, "error", err)
	}
	return res
}

func buildReport(results []TargetResult, elapsed time.Duration) *Report {
	summary := Summary{
		Targets:          len(results),
		IssuesByCategory: make(map[string]int),
		Elapsed:          elapsed.Round(time.Millisecond).String(),
	}
	for _, r := range results {
		if r.failed() {
			summary.Failed++
		}
		summary.Issues += len(r.Issues)
		for _, is := range r.Issues {
			summary.IssuesByCategory[is.Category]++
		}
	}
	return &Report{Summary: summary, Targets: results}
}

func writeReport(report *Report, path string, stdout io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

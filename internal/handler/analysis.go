package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/analysis"
	"github.com/siteproof/api/internal/dictionary"
	"github.com/siteproof/api/internal/extract"
	"github.com/siteproof/api/internal/httpclient"
	"github.com/siteproof/api/internal/issue"
	"github.com/siteproof/api/internal/limiter"
	"github.com/siteproof/api/internal/middleware"
	"github.com/siteproof/api/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxContentBytes caps content submitted for analysis.
const MaxContentBytes = 1 << 20

// AnalysisHandler serves the analysis endpoints.
type AnalysisHandler struct {
	db        *gorm.DB
	analyzer  *analysis.Analyzer
	resolver  *dictionary.Resolver
	extractor *extract.Extractor
	limiter   *limiter.Limiter
	logger    hclog.Logger

	maxContent int
}

func NewAnalysisHandler(db *gorm.DB, analyzer *analysis.Analyzer, resolver *dictionary.Resolver, extractor *extract.Extractor, l *limiter.Limiter, logger hclog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AnalysisHandler{
		db:        db,
		analyzer:  analyzer,
		resolver:  resolver,
		extractor: extractor,
		limiter:   l,
		logger:    logger,

		maxContent: MaxContentBytes,
	}
}

type AnalyzeRequest struct {
	Content      string   `json:"content"`
	Checks       []string `json:"checks" binding:"required"`
	DeepAnalysis bool     `json:"deep_analysis"`
	Language     string   `json:"language"`
	ProjectID    *int64   `json:"project_id"`
}

type AnalyzeURLRequest struct {
	URL          string   `json:"url" binding:"required"`
	Checks       []string `json:"checks" binding:"required"`
	DeepAnalysis bool     `json:"deep_analysis"`
	Language     string   `json:"language"`
	ProjectID    *int64   `json:"project_id"`
}

type AnalyzeResponse struct {
	ID       string            `json:"id,omitempty"`
	Issues   []issue.Issue     `json:"issues"`
	Scores   map[string]int    `json:"scores"`
	Failures map[string]string `json:"failures,omitempty"`
	Page     *extract.Page     `json:"page,omitempty"`
}

// Analyze runs checks against submitted content
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Content) > h.maxContent {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "content too large"})
		return
	}

	h.run(c, analysis.Request{
		Content:      req.Content,
		Checks:       req.Checks,
		DeepAnalysis: req.DeepAnalysis,
		Language:     req.Language,
	}, req.ProjectID, nil)
}

// AnalyzeURL fetches a page and analyzes its readable text
func (h *AnalysisHandler) AnalyzeURL(c *gin.Context) {
	var req AnalyzeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := analysis.ParseChecks(req.Checks); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.extractor.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrInvalidURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, httpclient.ErrNonPublicAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": "url must point to a public host"})
		case errors.Is(err, extract.ErrNoContent):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			middleware.Logger(c, h.logger).Warn("page fetch failed", "url", req.URL, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch page"})
		}
		return
	}
	if len(page.Text) > h.maxContent {
		page.Text = truncateUTF8(page.Text, h.maxContent)
		page.Truncated = true
	}

	h.run(c, analysis.Request{
		Content:      page.Text,
		Checks:       req.Checks,
		DeepAnalysis: req.DeepAnalysis,
		Language:     req.Language,
	}, req.ProjectID, page)
}

func (h *AnalysisHandler) run(c *gin.Context, req analysis.Request, projectID *int64, page *extract.Page) {
	logger := middleware.Logger(c, h.logger)
	orgID := c.GetInt64(middleware.ContextOrganizationID)

	checks, err := analysis.ParseChecks(req.Checks)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if projectID != nil {
		project, err := h.resolver.LoadProject(c.Request.Context(), *projectID)
		if err != nil || project.OrganizationID != orgID {
			if err != nil && !errors.Is(err, dictionary.ErrProjectNotFound) {
				logger.Error("failed to load project", "project", *projectID, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load project"})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		req.Project = project
	}

	for _, check := range checks {
		if analysis.IsAIBacked(check) {
			if !middleware.CheckRateLimit(c, h.limiter, limiter.ActionAICheck, h.logger) {
				return
			}
			break
		}
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := AnalyzeResponse{
		Issues:   result.Issues,
		Scores:   result.Scores,
		Failures: result.Failures,
		Page:     page,
	}
	if run := h.saveRun(c, orgID, projectID, checks, req, result); run != nil {
		resp.ID = run.ID
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnalysisHandler) saveRun(c *gin.Context, orgID int64, projectID *int64, checks []string, req analysis.Request, result *analysis.Result) *model.AnalysisRun {
	if h.db == nil {
		return nil
	}
	logger := middleware.Logger(c, h.logger)

	scores, _ := json.Marshal(result.Scores)
	run := &model.AnalysisRun{
		ProjectID:    projectID,
		Checks:       checks,
		Language:     result.Language,
		DeepAnalysis: req.DeepAnalysis,
		Scores:       datatypes.JSON(scores),
		IssueCount:   len(result.Issues),
	}
	if orgID != 0 {
		run.OrganizationID = &orgID
	}
	if len(result.Failures) > 0 {
		failures, _ := json.Marshal(result.Failures)
		run.Failures = datatypes.JSON(failures)
	}

	// a lost history row must not cost the caller the result
	if err := h.db.WithContext(c.Request.Context()).Create(run).Error; err != nil {
		logger.Warn("failed to save analysis run", "error", err)
		return nil
	}
	return run
}

// GetRun returns a stored analysis summary
func (h *AnalysisHandler) GetRun(c *gin.Context) {
	orgID := c.GetInt64(middleware.ContextOrganizationID)

	var run model.AnalysisRun
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND organization_id = ?", c.Param("id"), orgID).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analysis"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/dictionary"
	"github.com/siteproof/api/internal/middleware"
	"github.com/siteproof/api/internal/model"
)

// MaxImportWords caps one import request.
const MaxImportWords = 10000

// DictionaryHandler serves custom and industry dictionary endpoints.
type DictionaryHandler struct {
	resolver *dictionary.Resolver
	logger   hclog.Logger
}

func NewDictionaryHandler(resolver *dictionary.Resolver, logger hclog.Logger) *DictionaryHandler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &DictionaryHandler{resolver: resolver, logger: logger}
}

type AddWordRequest struct {
	Word      string `json:"word" binding:"required"`
	ProjectID *int64 `json:"project_id"`
}

type ImportWordsRequest struct {
	Words     []string `json:"words" binding:"required"`
	ProjectID *int64   `json:"project_id"`
}

type EnableIndustryRequest struct {
	Slug string `json:"slug" binding:"required"`
}

type UpsertIndustryRequest struct {
	Name  string   `json:"name" binding:"required"`
	Words []string `json:"words"`
}

// ListWords returns the organization's words, or one project's words when
// project_id is given
func (h *DictionaryHandler) ListWords(c *gin.Context) {
	orgID := c.GetInt64(middleware.ContextOrganizationID)

	var projectID *int64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		projectID = &id
	}

	words, err := h.resolver.ListWords(c.Request.Context(), orgID, projectID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"words": words, "count": len(words)})
}

// AddWord adds a custom word
func (h *DictionaryHandler) AddWord(c *gin.Context) {
	var req AddWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}

	entry, err := h.resolver.AddWord(c.Request.Context(), dictionary.NewWord{
		OrganizationID: c.GetInt64(middleware.ContextOrganizationID),
		ProjectID:      req.ProjectID,
		Word:           req.Word,
		Source:         model.SourceCustom,
		AddedBy:        userID(c),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// PromoteSuggestion keeps a word a scan flagged
func (h *DictionaryHandler) PromoteSuggestion(c *gin.Context) {
	var req AddWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}

	entry, err := h.resolver.PromoteSuggestion(c.Request.Context(),
		c.GetInt64(middleware.ContextOrganizationID), req.ProjectID, req.Word, userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ImportWords bulk-adds words
func (h *DictionaryHandler) ImportWords(c *gin.Context) {
	var req ImportWordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "words are required"})
		return
	}
	if len(req.Words) > MaxImportWords {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many words", "max": MaxImportWords})
		return
	}

	summary, err := h.resolver.ImportWords(c.Request.Context(),
		c.GetInt64(middleware.ContextOrganizationID), req.ProjectID, req.Words, userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RemoveWord deletes a word
func (h *DictionaryHandler) RemoveWord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid word id"})
		return
	}

	if err := h.resolver.RemoveWord(c.Request.Context(), c.GetInt64(middleware.ContextOrganizationID), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// EnableIndustry links an industry dictionary to one of the caller's projects
func (h *DictionaryHandler) EnableIndustry(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req EnableIndustryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug is required"})
		return
	}

	ctx := c.Request.Context()
	project, err := h.resolver.LoadProject(ctx, projectID)
	if err != nil || project.OrganizationID != c.GetInt64(middleware.ContextOrganizationID) {
		if err == nil {
			err = dictionary.ErrProjectNotFound
		}
		h.respondError(c, err)
		return
	}

	if err := h.resolver.EnableIndustryDictionary(ctx, projectID, req.Slug); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpsertIndustry creates or replaces an industry dictionary (admin only)
func (h *DictionaryHandler) UpsertIndustry(c *gin.Context) {
	var req UpsertIndustryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	dict, err := h.resolver.UpsertIndustryDictionary(c.Request.Context(), c.Param("slug"), req.Name, req.Words)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dict)
}

func (h *DictionaryHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dictionary.ErrEmptyWord),
		errors.Is(err, dictionary.ErrInvalidSource),
		errors.Is(err, dictionary.ErrEmptySlug),
		errors.Is(err, dictionary.ErrMalformedScope):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dictionary.ErrDuplicateWord):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, dictionary.ErrWordNotFound),
		errors.Is(err, dictionary.ErrProjectNotFound),
		errors.Is(err, dictionary.ErrIndustryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		middleware.Logger(c, h.logger).Error("dictionary request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func userID(c *gin.Context) *int64 {
	if id := c.GetInt64(middleware.ContextUserID); id != 0 {
		return &id
	}
	return nil
}

package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/cache"
	"github.com/siteproof/api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMalformedScope   = errors.New("project has no organization")
	ErrProjectNotFound  = errors.New("project not found")
	ErrWordNotFound     = errors.New("dictionary word not found")
	ErrEmptyWord        = errors.New("word must be non-empty")
	ErrDuplicateWord    = errors.New("word already in dictionary")
	ErrInvalidSource    = errors.New("invalid word source")
	ErrIndustryNotFound = errors.New("industry dictionary not found")
	ErrEmptySlug        = errors.New("industry dictionary slug must be non-empty")
)

// WordSetCache stores resolved dictionaries. *cache.RedisCache satisfies it.
type WordSetCache interface {
	GetWordSet(ctx context.Context, key string) ([]string, bool, error)
	SetWordSet(ctx context.Context, key string, words []string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Resolver merges organization, project and industry dictionaries.
type Resolver struct {
	db     *gorm.DB
	cache  WordSetCache
	ttl    time.Duration
	logger hclog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache enables caching of resolved sets. Cache failures fall back to
// the database.
func WithCache(c WordSetCache, ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.cache = c
		r.ttl = ttl
	}
}

// WithLogger sets the logger for writes and cache failures.
func WithLogger(logger hclog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver returns a resolver backed by db. Without WithCache every
// lookup goes to the database.
func NewResolver(db *gorm.DB, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		db:     db,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ApplicableWords returns every word excluded from spell checks for the
// project: its organization's words, its own words and the words of each
// enabled industry dictionary.
func (r *Resolver) ApplicableWords(ctx context.Context, project *model.Project) (WordSet, error) {
	if project == nil || project.OrganizationID == 0 {
		return nil, ErrMalformedScope
	}

	key := cache.ProjectDictionaryKey(project.ID)
	if r.cache != nil && project.ID != 0 {
		words, ok, err := r.cache.GetWordSet(ctx, key)
		if err != nil {
			r.logger.Warn("dictionary cache read failed", "project", project.ID, "error", err)
		} else if ok {
			recordCacheLookup(true)
			return NewWordSet(words...), nil
		}
		recordCacheLookup(false)
	}

	set, err := r.resolve(ctx, project)
	if err != nil {
		return nil, err
	}

	if r.cache != nil && project.ID != 0 {
		if err := r.cache.SetWordSet(ctx, key, set.Words(), r.ttl); err != nil {
			r.logger.Warn("dictionary cache write failed", "project", project.ID, "error", err)
		}
	}
	return set, nil
}

func (r *Resolver) resolve(ctx context.Context, project *model.Project) (WordSet, error) {
	db := r.db.WithContext(ctx)

	var words []string
	query := db.Model(&model.DictionaryWord{}).Where("organization_id = ?", project.OrganizationID)
	if project.ID != 0 {
		query = query.Where("project_id IS NULL OR project_id = ?", project.ID)
	} else {
		query = query.Where("project_id IS NULL")
	}
	if err := query.Pluck("word", &words).Error; err != nil {
		return nil, fmt.Errorf("failed to load dictionary words: %w", err)
	}
	set := NewWordSet(words...)

	industries := project.IndustryDictionaries
	if project.ID != 0 {
		industries = nil
		if err := db.Model(project).Association("IndustryDictionaries").Find(&industries); err != nil {
			return nil, fmt.Errorf("failed to load industry dictionaries: %w", err)
		}
	}
	for _, d := range industries {
		set.Add(d.Words...)
	}

	r.logger.Debug("resolved dictionary",
		"organization", project.OrganizationID,
		"project", project.ID,
		"industries", len(industries),
		"words", set.Len())
	return set, nil
}

// LoadProject fetches a project with its industry dictionaries.
func (r *Resolver) LoadProject(ctx context.Context, projectID int64) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Preload("IndustryDictionaries").First(&project, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// NewWord describes a word to add. A nil ProjectID adds it organization-wide.
type NewWord struct {
	OrganizationID int64
	ProjectID      *int64
	Word           string
	Source         string
	AddedBy        *int64
}

// AddWord stores a normalized word in the organization or project
// dictionary. An existing entry is returned along with ErrDuplicateWord.
// Cached word sets of the affected projects are invalidated.
func (r *Resolver) AddWord(ctx context.Context, nw NewWord) (*model.DictionaryWord, error) {
	word := model.NormalizeWord(nw.Word)
	if word == "" {
		return nil, ErrEmptyWord
	}
	if nw.Source == "" {
		nw.Source = model.SourceCustom
	}
	if !model.ValidSource(nw.Source) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, nw.Source)
	}
	if err := r.checkScope(ctx, nw.OrganizationID, nw.ProjectID); err != nil {
		return nil, err
	}

	existing, err := r.findWord(ctx, nw.OrganizationID, nw.ProjectID, word)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, ErrDuplicateWord
	}

	entry := &model.DictionaryWord{
		OrganizationID: nw.OrganizationID,
		ProjectID:      nw.ProjectID,
		Word:           word,
		Source:         nw.Source,
		AddedBy:        nw.AddedBy,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isUniqueConstraintErr(err) {
			return nil, ErrDuplicateWord
		}
		return nil, fmt.Errorf("failed to save word: %w", err)
	}

	r.invalidate(ctx, nw.OrganizationID, nw.ProjectID)
	r.logger.Info("dictionary word added",
		"organization", nw.OrganizationID,
		"project", nw.ProjectID,
		"word", word,
		"source", nw.Source)
	return entry, nil
}

// PromoteSuggestion keeps a word flagged by a scan as intentional.
func (r *Resolver) PromoteSuggestion(ctx context.Context, orgID int64, projectID *int64, word string, addedBy *int64) (*model.DictionaryWord, error) {
	return r.AddWord(ctx, NewWord{
		OrganizationID: orgID,
		ProjectID:      projectID,
		Word:           word,
		Source:         model.SourceScanSuggestion,
		AddedBy:        addedBy,
	})
}

// ImportSummary reports the outcome of ImportWords.
type ImportSummary struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// ImportWords bulk-adds words with the imported source. Blanks and words
// already present in the scope are skipped.
func (r *Resolver) ImportWords(ctx context.Context, orgID int64, projectID *int64, words []string, addedBy *int64) (ImportSummary, error) {
	var summary ImportSummary
	if err := r.checkScope(ctx, orgID, projectID); err != nil {
		return summary, err
	}

	existing, err := r.scopeWords(ctx, orgID, projectID)
	if err != nil {
		return summary, err
	}

	var rows []model.DictionaryWord
	for _, raw := range words {
		w := model.NormalizeWord(raw)
		if w == "" || existing.Contains(w) {
			summary.Skipped++
			continue
		}
		existing.Add(w)
		rows = append(rows, model.DictionaryWord{
			OrganizationID: orgID,
			ProjectID:      projectID,
			Word:           w,
			Source:         model.SourceImported,
			AddedBy:        addedBy,
		})
	}

	if len(rows) > 0 {
		const batchSize = 500
		if err := r.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
			return summary, fmt.Errorf("failed to import words: %w", err)
		}
		r.invalidate(ctx, orgID, projectID)
	}
	summary.Inserted = len(rows)

	r.logger.Info("dictionary import complete",
		"organization", orgID,
		"project", projectID,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped)
	return summary, nil
}

// RemoveWord deletes a word owned by the organization.
func (r *Resolver) RemoveWord(ctx context.Context, orgID, wordID int64) error {
	var entry model.DictionaryWord
	err := r.db.WithContext(ctx).Where("id = ? AND organization_id = ?", wordID, orgID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrWordNotFound
	}
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	r.invalidate(ctx, orgID, entry.ProjectID)
	return nil
}

// ListWords returns the words of exactly one scope: organization-wide when
// projectID is nil, otherwise the project's own words.
func (r *Resolver) ListWords(ctx context.Context, orgID int64, projectID *int64) ([]model.DictionaryWord, error) {
	var entries []model.DictionaryWord
	query := r.db.WithContext(ctx).Where("organization_id = ?", orgID)
	if projectID == nil {
		query = query.Where("project_id IS NULL")
	} else {
		query = query.Where("project_id = ?", *projectID)
	}
	if err := query.Order("word ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpsertIndustryDictionary creates or replaces an industry word list by slug.
func (r *Resolver) UpsertIndustryDictionary(ctx context.Context, slug, name string, words []string) (*model.IndustryDictionary, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, ErrEmptySlug
	}

	dict := &model.IndustryDictionary{
		Slug:  slug,
		Name:  name,
		Words: NewWordSet(words...).Words(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "words", "updated_at"}),
	}).Create(dict).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save industry dictionary %s: %w", slug, err)
	}

	var saved model.IndustryDictionary
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&saved).Error; err != nil {
		return nil, err
	}
	r.invalidateIndustry(ctx, saved.ID)
	return &saved, nil
}

// EnableIndustryDictionary links an industry dictionary to a project.
func (r *Resolver) EnableIndustryDictionary(ctx context.Context, projectID int64, slug string) error {
	project, err := r.LoadProject(ctx, projectID)
	if err != nil {
		return err
	}

	var dict model.IndustryDictionary
	err = r.db.WithContext(ctx).Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).First(&dict).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %q", ErrIndustryNotFound, slug)
	}
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Model(project).Association("IndustryDictionaries").Append(&dict); err != nil {
		return err
	}
	r.invalidate(ctx, project.OrganizationID, &project.ID)
	return nil
}

func (r *Resolver) checkScope(ctx context.Context, orgID int64, projectID *int64) error {
	if orgID == 0 {
		return ErrMalformedScope
	}
	if projectID == nil {
		return nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND organization_id = ?", *projectID, orgID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *Resolver) findWord(ctx context.Context, orgID int64, projectID *int64, word string) (*model.DictionaryWord, error) {
	var entry model.DictionaryWord
	query := r.db.WithContext(ctx).Where("organization_id = ? AND word = ?", orgID, word)
	if projectID == nil {
		query = query.Where("project_id IS NULL")
	} else {
		query = query.Where("project_id = ?", *projectID)
	}

	err := query.First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Resolver) scopeWords(ctx context.Context, orgID int64, projectID *int64) (WordSet, error) {
	entries, err := r.ListWords(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}
	set := make(WordSet, len(entries))
	for _, e := range entries {
		set.Add(e.Word)
	}
	return set, nil
}

// invalidate drops cached sets touched by a write: one project, or every
// project of the organization for organization-wide words.
func (r *Resolver) invalidate(ctx context.Context, orgID int64, projectID *int64) {
	if r.cache == nil {
		return
	}

	var ids []int64
	if projectID != nil {
		ids = []int64{*projectID}
	} else if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("organization_id = ?", orgID).Pluck("id", &ids).Error; err != nil {
		r.logger.Warn("failed to list projects for cache invalidation", "organization", orgID, "error", err)
		return
	}
	r.deleteKeys(ctx, ids)
}

func (r *Resolver) invalidateIndustry(ctx context.Context, dictID int64) {
	if r.cache == nil {
		return
	}

	var ids []int64
	if err := r.db.WithContext(ctx).Table("project_industry_dictionaries").
		Where("industry_dictionary_id = ?", dictID).Pluck("project_id", &ids).Error; err != nil {
		r.logger.Warn("failed to list projects for cache invalidation", "industry_dictionary", dictID, "error", err)
		return
	}
	r.deleteKeys(ctx, ids)
}

func (r *Resolver) deleteKeys(ctx context.Context, projectIDs []int64) {
	if len(projectIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(projectIDs))
	for _, id := range projectIDs {
		keys = append(keys, cache.ProjectDictionaryKey(id))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("dictionary cache invalidation failed", "keys", len(keys), "error", err)
	}
}

// isUniqueConstraintErr returns true when the error indicates a unique/constraint violation
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "duplicate key")
}

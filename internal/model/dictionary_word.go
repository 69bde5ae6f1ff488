package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Source constants
const (
	SourceCustom         = "custom"
	SourceImported       = "imported"
	SourceScanSuggestion = "scan_suggestion"
)

// DictionaryWord is a term excluded from spelling checks. A nil ProjectID
// makes the word organization-wide.
type DictionaryWord struct {
	ID             int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrganizationID int64         `gorm:"not null;index" json:"organizationId"`
	ProjectID      *int64        `gorm:"index" json:"projectId"`
	Word           string        `gorm:"not null;size:255" json:"word"`
	Source         string        `gorm:"not null;size:32;default:'custom'" json:"source"`
	AddedBy        *int64        `json:"addedBy,omitempty"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	Project        *Project      `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func (DictionaryWord) TableName() string {
	return "dictionary_words"
}

// BeforeSave keeps stored words normalized no matter how they were built.
func (w *DictionaryWord) BeforeSave(tx *gorm.DB) error {
	w.Word = NormalizeWord(w.Word)
	if w.Source == "" {
		w.Source = SourceCustom
	}
	return nil
}

// IsProjectScoped reports whether the word only applies to one project.
func (w *DictionaryWord) IsProjectScoped() bool {
	return w.ProjectID != nil
}

// NormalizeWord trims surrounding whitespace and lower-cases the word.
// Lookups must go through the same transform.
func NormalizeWord(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidSource reports whether s is one of the known word sources.
func ValidSource(s string) bool {
	switch s {
	case SourceCustom, SourceImported, SourceScanSuggestion:
		return true
	}
	return false
}

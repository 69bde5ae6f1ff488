package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalysisRun is the summary row written for every analysis request.
type AnalysisRun struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrganizationID *int64         `gorm:"index" json:"organizationId,omitempty"`
	ProjectID      *int64         `gorm:"index" json:"projectId,omitempty"`
	Checks         StringList     `json:"checks"`
	Language       string         `gorm:"size:16" json:"language"`
	DeepAnalysis   bool           `json:"deepAnalysis"`
	Scores         datatypes.JSON `json:"scores"`
	Failures       datatypes.JSON `json:"failures,omitempty"`
	IssueCount     int            `json:"issueCount"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (AnalysisRun) TableName() string {
	return "analysis_runs"
}

func (r *AnalysisRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

package model

import (
	"time"
)

type Organization struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Organization) TableName() string {
	return "organizations"
}

// Project is the unit a content audit runs against. OrganizationID is
// required; a zero value means the scope is malformed. Enabled industry
// dictionaries are linked through project_industry_dictionaries, whose
// rows go away with either side.
type Project struct {
	ID                   int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	OrganizationID       int64                `gorm:"not null;index" json:"organizationId"`
	Name                 string               `gorm:"not null;size:255" json:"name"`
	Locale               string               `gorm:"size:16;default:'en'" json:"locale"`
	Organization         *Organization        `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	IndustryDictionaries []IndustryDictionary `gorm:"many2many:project_industry_dictionaries;constraint:OnDelete:CASCADE" json:"industryDictionaries,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}

// IndustryDictionary is a curated word list (legal, medical, saas, ...)
// that projects opt into.
type IndustryDictionary struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug      string     `gorm:"not null;uniqueIndex;size:64" json:"slug"`
	Name      string     `gorm:"not null;size:255" json:"name"`
	Words     StringList `json:"words"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (IndustryDictionary) TableName() string {
	return "industry_dictionaries"
}

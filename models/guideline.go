package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ScoringGuide describes the four score bands for a guideline category
type ScoringGuide struct {
	Range1To3  string `json:"1-3"`
	Range4To5  string `json:"4-5"`
	Range6To7  string `json:"6-7"`
	Range8To10 string `json:"8-10"`
}

// GuidelineCategory is one of the eight evaluation dimensions in a generated
// guideline set. Weight is a fraction of the total score; within one
// generation all weights must sum to 1.0.
type GuidelineCategory struct {
	Section      string       `json:"section"`
	Name         string       `json:"name"`
	Weight       float64      `json:"weight"`
	Criteria     []string     `json:"criteria"`
	RedFlags     []string     `json:"red_flags"`
	ScoringGuide ScoringGuide `json:"scoring_guide"`
}

// GeneratedGuidelines is a complete category set produced by one generation
type GeneratedGuidelines struct {
	Categories []GuidelineCategory `json:"categories"`
}

// CategoryCriteria is the JSONB payload stored per guideline row: everything
// about a category except its section key and weight, which get their own
// columns.
type CategoryCriteria struct {
	Name         string       `json:"name"`
	Criteria     []string     `json:"criteria"`
	RedFlags     []string     `json:"red_flags"`
	ScoringGuide ScoringGuide `json:"scoring_guide"`
}

// Value implements driver.Valuer for JSONB
func (c CategoryCriteria) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB
func (c *CategoryCriteria) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// Guideline is one stored category row of a versioned guideline set
type Guideline struct {
	ID             int64            `json:"id"`
	ProgramID      int64            `json:"program_id"`
	Section        string           `json:"section"`
	Weight         float64          `json:"weight"`
	Criteria       CategoryCriteria `json:"criteria"`
	PromptTemplate string           `json:"prompt_template"`
	IsActive       bool             `json:"is_active"`
	Version        int              `json:"version"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Category converts a stored row back into its generated form
func (g *Guideline) Category() GuidelineCategory {
	return GuidelineCategory{
		Section:      g.Section,
		Name:         g.Criteria.Name,
		Weight:       g.Weight,
		Criteria:     g.Criteria.Criteria,
		RedFlags:     g.Criteria.RedFlags,
		ScoringGuide: g.Criteria.ScoringGuide,
	}
}

// GuidelinesVersionSummary is a version history entry
type GuidelinesVersionSummary struct {
	Version       int       `json:"version"`
	IsActive      bool      `json:"is_active"`
	CategoryCount int       `json:"category_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// GuidelinesVersion is a full saved version assembled from its category rows
type GuidelinesVersion struct {
	ProgramID  int64               `json:"program_id"`
	Version    int                 `json:"version"`
	IsActive   bool                `json:"is_active"`
	Guidelines GeneratedGuidelines `json:"guidelines"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

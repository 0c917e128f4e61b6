package service

import (
	"math"

	"github.com/Mattiasalardi/VDP/models"
)

const weightSumTolerance = 0.01

// ValidateGuidelines checks a generated category set against the structural
// contract: non-empty, unique sections, complete fields per category, weights
// in [0,1] summing to 1.0 within tolerance. The first violation found is
// returned with the offending category and field.
func ValidateGuidelines(guidelines *models.GeneratedGuidelines) error {
	if guidelines == nil || len(guidelines.Categories) == 0 {
		return &ValidationError{Field: "categories", Reason: "at least one category is required"}
	}

	seen := make(map[string]struct{}, len(guidelines.Categories))
	sum := 0.0
	for _, category := range guidelines.Categories {
		if category.Section == "" {
			return &ValidationError{Field: "section", Reason: "missing section key"}
		}
		if _, dup := seen[category.Section]; dup {
			return &ValidationError{Section: category.Section, Field: "section", Reason: "duplicate section key"}
		}
		seen[category.Section] = struct{}{}

		if category.Name == "" {
			return &ValidationError{Section: category.Section, Field: "name", Reason: "missing display name"}
		}
		if category.Weight < 0 || category.Weight > 1 {
			return &ValidationError{Section: category.Section, Field: "weight", Reason: "weight must be between 0 and 1"}
		}
		if len(category.Criteria) == 0 {
			return &ValidationError{Section: category.Section, Field: "criteria", Reason: "at least one criterion is required"}
		}
		if len(category.RedFlags) == 0 {
			return &ValidationError{Section: category.Section, Field: "red_flags", Reason: "at least one red flag is required"}
		}
		if err := validateScoringGuide(category); err != nil {
			return err
		}

		sum += category.Weight
	}

	if math.Abs(sum-1.0) > weightSumTolerance {
		return &ValidationError{Field: "weight", Reason: "category weights must sum to 1.0"}
	}
	return nil
}

func validateScoringGuide(category models.GuidelineCategory) error {
	guide := category.ScoringGuide
	for _, band := range []struct {
		label string
		text  string
	}{
		{"1-3", guide.Range1To3},
		{"4-5", guide.Range4To5},
		{"6-7", guide.Range6To7},
		{"8-10", guide.Range8To10},
	} {
		if band.text == "" {
			return &ValidationError{Section: category.Section, Field: "scoring_guide." + band.label, Reason: "missing score band description"}
		}
	}
	return nil
}

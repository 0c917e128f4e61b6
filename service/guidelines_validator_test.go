package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattiasalardi/VDP/models"
)

func validCategory(section string, weight float64) models.GuidelineCategory {
	return models.GuidelineCategory{
		Section:  section,
		Name:     section,
		Weight:   weight,
		Criteria: []string{"criterion"},
		RedFlags: []string{"red flag"},
		ScoringGuide: models.ScoringGuide{
			Range1To3:  "poor",
			Range4To5:  "basic",
			Range6To7:  "good",
			Range8To10: "excellent",
		},
	}
}

func eightCategories(weights [8]float64) *models.GeneratedGuidelines {
	sections := []string{
		"problem_solution_fit", "customer_profile", "product_technology", "team_assessment",
		"market_opportunity", "competition_differentiation", "financial_overview", "validation_achievements",
	}
	g := &models.GeneratedGuidelines{}
	for i, section := range sections {
		g.Categories = append(g.Categories, validCategory(section, weights[i]))
	}
	return g
}

func TestValidateAcceptsWeightsSummingToOne(t *testing.T) {
	g := eightCategories([8]float64{0.15, 0.15, 0.1, 0.15, 0.15, 0.1, 0.1, 0.1})
	assert.NoError(t, ValidateGuidelines(g))
}

func TestValidateAcceptsWithinTolerance(t *testing.T) {
	g := eightCategories([8]float64{0.15, 0.15, 0.1, 0.15, 0.15, 0.1, 0.1, 0.105})
	assert.NoError(t, ValidateGuidelines(g))
}

func TestValidateRejectsWeightSumBelowOne(t *testing.T) {
	g := eightCategories([8]float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1})

	err := ValidateGuidelines(g)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "weight", vErr.Field)
}

func TestValidateRejectsEmptySet(t *testing.T) {
	var vErr *ValidationError
	require.ErrorAs(t, ValidateGuidelines(nil), &vErr)
	require.ErrorAs(t, ValidateGuidelines(&models.GeneratedGuidelines{}), &vErr)
	assert.Equal(t, "categories", vErr.Field)
}

func TestValidateRejectsDuplicateSections(t *testing.T) {
	g := &models.GeneratedGuidelines{Categories: []models.GuidelineCategory{
		validCategory("team_assessment", 0.5),
		validCategory("team_assessment", 0.5),
	}}

	var vErr *ValidationError
	require.ErrorAs(t, ValidateGuidelines(g), &vErr)
	assert.Equal(t, "team_assessment", vErr.Section)
	assert.Equal(t, "duplicate section key", vErr.Reason)
}

func TestValidateRejectsWeightOutOfRange(t *testing.T) {
	g := &models.GeneratedGuidelines{Categories: []models.GuidelineCategory{
		validCategory("team_assessment", 1.5),
	}}

	var vErr *ValidationError
	require.ErrorAs(t, ValidateGuidelines(g), &vErr)
	assert.Equal(t, "weight", vErr.Field)
	assert.Equal(t, "team_assessment", vErr.Section)
}

func TestValidateRejectsMissingCriteria(t *testing.T) {
	c := validCategory("team_assessment", 1.0)
	c.Criteria = nil
	g := &models.GeneratedGuidelines{Categories: []models.GuidelineCategory{c}}

	var vErr *ValidationError
	require.ErrorAs(t, ValidateGuidelines(g), &vErr)
	assert.Equal(t, "criteria", vErr.Field)
}

func TestValidateRejectsMissingRedFlags(t *testing.T) {
	c := validCategory("team_assessment", 1.0)
	c.RedFlags = []string{}
	g := &models.GeneratedGuidelines{Categories: []models.GuidelineCategory{c}}

	var vErr *ValidationError
	require.ErrorAs(t, ValidateGuidelines(g), &vErr)
	assert.Equal(t, "red_flags", vErr.Field)
}

func TestValidateRejectsIncompleteScoringGuide(t *testing.T) {
	c := validCategory("team_assessment", 1.0)
	c.ScoringGuide.Range6To7 = ""
	g := &models.GeneratedGuidelines{Categories: []models.GuidelineCategory{c}}

	var vErr *ValidationError
	require.ErrorAs(t, ValidateGuidelines(g), &vErr)
	assert.Equal(t, "scoring_guide.6-7", vErr.Field)
}

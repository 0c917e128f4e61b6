package openrouter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mattiasalardi/VDP/models"
)

// preference is one calibration key surfaced to the model, with the fallback
// used when the program has not answered it
type preference struct {
	label    string
	key      string
	fallback string
}

// Fixed order keeps the prompt deterministic for cache keying.
var promptPreferences = []preference{
	{"Team Assessment Priority", "team_importance", "balanced"},
	{"Market Size Preference", "market_size_preference", "flexible"},
	{"Revenue Requirements", "revenue_stage_preference", "flexible"},
	{"Technology & IP Focus", "technology_innovation", "balanced"},
	{"Scalability Focus", "scalability_focus", "balanced"},
	{"Funding Stage Comfort", "funding_stage_comfort", "any"},
	{"Validation Standards", "customer_validation_requirements", "moderate"},
	{"Risk Tolerance", "risk_tolerance", "balanced"},
}

// BuildGuidelinesPrompt renders the generation instruction for a program's
// calibration answers. Deterministic: the same answers always produce the
// same string. Unknown or missing keys fall back to neutral defaults.
func BuildGuidelinesPrompt(answers map[string]models.AnswerValue) string {
	var b strings.Builder

	b.WriteString("You are an expert startup accelerator evaluator. Based on these accelerator preferences, generate comprehensive scoring guidelines for evaluating startup applications:\n\n")
	b.WriteString("ACCELERATOR PREFERENCES:\n")
	for _, p := range promptPreferences {
		value := p.fallback
		if answer, ok := answers[p.key]; ok {
			if s := answerString(answer); s != "" {
				value = s
			}
		}
		fmt.Fprintf(&b, "- %s: %s\n", p.label, value)
	}

	b.WriteString(`
Generate guidelines for these 8 evaluation categories, adjusting weights based on the preferences above:

1. Problem-Solution Fit
2. Customer Profile & Business Model
3. Product & Technology
4. Team Assessment
5. Market Opportunity
6. Competition & Differentiation
7. Financial Overview
8. Validation & Achievements

For each category, provide:
- Weight (decimal between 0 and 1; the weights of all 8 categories MUST sum to exactly 1.0)
- Key evaluation criteria (3-5 bullet points)
- Red flags to watch for (2-3 bullet points)
- Scoring guidance for a 1-10 scale

Respond with ONLY a valid JSON object in this exact format:
{
  "categories": [
    {
      "section": "problem_solution_fit",
      "name": "Problem-Solution Fit",
      "weight": 0.15,
      "criteria": [
        "Clear problem definition and market pain point identification",
        "Solution directly addresses the identified problem"
      ],
      "red_flags": [
        "Vague or non-existent problem definition"
      ],
      "scoring_guide": {
        "1-3": "Poor problem-solution alignment",
        "4-5": "Basic understanding but unclear fit",
        "6-7": "Good alignment with some validation",
        "8-10": "Excellent fit with strong validation"
      }
    }
  ]
}

Adjust weights based on accelerator preferences - higher weights for categories that align with their priorities. The eight weights must sum to 1.0.`)

	return b.String()
}

// answerString flattens a structured answer into prompt text
func answerString(answer models.AnswerValue) string {
	switch {
	case answer.ScaleValue != nil:
		return strconv.Itoa(*answer.ScaleValue) + " out of 10"
	case answer.ChoiceValue != nil:
		return strings.ReplaceAll(*answer.ChoiceValue, "_", " ")
	case answer.TextValue != nil:
		text := strings.TrimSpace(*answer.TextValue)
		if len(text) > 300 {
			text = text[:300]
		}
		return text
	}
	return ""
}

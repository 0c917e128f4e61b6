// Package catalog defines the fixed calibration questionnaire accelerators
// fill out once per program. The questions are configuration data: they are
// versioned with the code, not stored in the database.
package catalog

// ChoiceOption is one selectable option of a multiple choice question
type ChoiceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question describes one calibration question and its validation constraints
type Question struct {
	Key         string         `json:"key"`
	Question    string         `json:"question"`
	Type        string         `json:"type"` // "scale", "multiple_choice" or "text"
	ScaleMin    int            `json:"scale_min,omitempty"`
	ScaleMax    int            `json:"scale_max,omitempty"`
	ScaleLabels map[int]string `json:"scale_labels,omitempty"`
	Options     []ChoiceOption `json:"options,omitempty"`
	MaxLength   int            `json:"max_length,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Description string         `json:"description"`
}

// Category groups related calibration questions for the form flow
type Category struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Questions   []string `json:"questions"`
}

const (
	TypeScale          = "scale"
	TypeMultipleChoice = "multiple_choice"
	TypeText           = "text"
)

// Questions is the full calibration catalog in presentation order
var Questions = []Question{
	{
		Key:      "team_importance",
		Question: "How important is the founding team's experience and background?",
		Type:     TypeScale,
		ScaleMin: 1,
		ScaleMax: 10,
		ScaleLabels: map[int]string{
			1:  "Not important - Great ideas matter more than experience",
			5:  "Moderately important - Good balance of idea and team",
			10: "Extremely important - Team experience is the top factor",
		},
		Description: "This helps us understand how much weight to give to team credentials, previous startup experience, domain expertise, and educational background.",
	},
	{
		Key:      "market_size_preference",
		Question: "What type of market opportunity do you prefer?",
		Type:     TypeMultipleChoice,
		Options: []ChoiceOption{
			{Value: "large_existing", Label: "Large existing markets with proven demand"},
			{Value: "emerging_high_growth", Label: "Emerging markets with high growth potential"},
			{Value: "niche_specialized", Label: "Niche markets with specialized needs"},
			{Value: "disruptive_new", Label: "Completely new markets being created"},
		},
		Description: "This influences how we evaluate market opportunity and size in applications.",
	},
	{
		Key:      "revenue_stage_preference",
		Question: "What revenue stage do you prefer startups to be in?",
		Type:     TypeMultipleChoice,
		Options: []ChoiceOption{
			{Value: "pre_revenue", Label: "Pre-revenue with strong validation"},
			{Value: "early_revenue", Label: "Early revenue ($1K-$50K monthly)"},
			{Value: "growing_revenue", Label: "Growing revenue ($50K+ monthly)"},
			{Value: "any_stage", Label: "Any stage with strong potential"},
		},
		Description: "This helps us properly evaluate financial metrics and revenue projections.",
	},
	{
		Key:      "technology_innovation",
		Question: "How important is technological innovation and IP?",
		Type:     TypeScale,
		ScaleMin: 1,
		ScaleMax: 10,
		ScaleLabels: map[int]string{
			1:  "Not important - Business model innovation matters more",
			5:  "Moderately important - Some tech advantage helpful",
			10: "Extremely important - Deep tech and patents essential",
		},
		Description: "This affects how we score technology sections and intellectual property.",
	},
	{
		Key:      "scalability_focus",
		Question: "What type of scalability do you value most?",
		Type:     TypeMultipleChoice,
		Options: []ChoiceOption{
			{Value: "rapid_user_growth", Label: "Rapid user/customer acquisition"},
			{Value: "revenue_scalability", Label: "Revenue scalability and unit economics"},
			{Value: "geographic_expansion", Label: "Geographic expansion potential"},
			{Value: "operational_efficiency", Label: "Operational efficiency and automation"},
		},
		Description: "This influences how we evaluate business model scalability.",
	},
	{
		Key:      "funding_stage_comfort",
		Question: "What funding stage are you most comfortable with?",
		Type:     TypeMultipleChoice,
		Options: []ChoiceOption{
			{Value: "bootstrap_pre_seed", Label: "Bootstrapped or pre-seed"},
			{Value: "seed_stage", Label: "Seed stage ($100K-$2M raised)"},
			{Value: "series_a_ready", Label: "Series A ready ($2M+ raised)"},
			{Value: "any_stage", Label: "Any stage depending on potential"},
		},
		Description: "This helps us evaluate funding history and future needs appropriately.",
	},
	{
		Key:         "industry_vertical_preference",
		Question:    "Do you have industry vertical preferences?",
		Type:        TypeText,
		MaxLength:   2000,
		Placeholder: "e.g., 'We prefer B2B SaaS, FinTech, and HealthTech but are open to exceptional opportunities in other sectors'",
		Description: "This helps us understand your sector focus and adjust evaluation criteria accordingly.",
	},
	{
		Key:      "competition_analysis_weight",
		Question: "How important is detailed competitive analysis?",
		Type:     TypeScale,
		ScaleMin: 1,
		ScaleMax: 10,
		ScaleLabels: map[int]string{
			1:  "Not critical - Unique value prop matters more",
			5:  "Important - Should understand competitive landscape",
			10: "Essential - Detailed competitive strategy required",
		},
		Description: "This affects how we score competitive analysis and differentiation sections.",
	},
	{
		Key:      "social_impact_importance",
		Question: "How important is social impact or ESG considerations?",
		Type:     TypeScale,
		ScaleMin: 1,
		ScaleMax: 10,
		ScaleLabels: map[int]string{
			1:  "Not a factor - Pure commercial focus",
			5:  "Nice to have - Positive impact is a plus",
			10: "Essential - Social impact is a key criteria",
		},
		Description: "This influences how we weight social impact and sustainability factors.",
	},
	{
		Key:      "customer_validation_requirements",
		Question: "What level of customer validation do you require?",
		Type:     TypeMultipleChoice,
		Options: []ChoiceOption{
			{Value: "strong_hypothesis", Label: "Strong hypothesis with market research"},
			{Value: "customer_interviews", Label: "Customer interviews and feedback"},
			{Value: "pilot_customers", Label: "Pilot customers or LOIs"},
			{Value: "paying_customers", Label: "Paying customers and retention data"},
		},
		Description: "This helps us properly evaluate validation and traction sections.",
	},
	{
		Key:      "risk_tolerance",
		Question: "What's your risk tolerance for early-stage investments?",
		Type:     TypeScale,
		ScaleMin: 1,
		ScaleMax: 10,
		ScaleLabels: map[int]string{
			1:  "Conservative - Prefer proven models",
			5:  "Balanced - Calculated risks acceptable",
			10: "High risk - Breakthrough potential worth big risks",
		},
		Description: "This affects our overall scoring approach and how we weigh different risk factors.",
	},
	{
		Key:         "geographic_preference",
		Question:    "Do you have geographic preferences for startups?",
		Type:        TypeText,
		MaxLength:   2000,
		Placeholder: "e.g., 'Prefer US and Canada, but open to exceptional international opportunities'",
		Description: "This helps us understand location-based evaluation criteria.",
	},
}

// Categories organizes the calibration flow, in form order
var Categories = []Category{
	{
		Key:         "team_and_founders",
		Title:       "Team & Founders",
		Description: "Your preferences for evaluating founding teams",
		Questions:   []string{"team_importance"},
	},
	{
		Key:         "market_and_opportunity",
		Title:       "Market & Opportunity",
		Description: "Your approach to market evaluation",
		Questions:   []string{"market_size_preference", "industry_vertical_preference", "geographic_preference"},
	},
	{
		Key:         "business_model",
		Title:       "Business Model & Traction",
		Description: "Your criteria for business models and validation",
		Questions:   []string{"revenue_stage_preference", "scalability_focus", "customer_validation_requirements"},
	},
	{
		Key:         "technology_and_innovation",
		Title:       "Technology & Innovation",
		Description: "Your approach to technology evaluation",
		Questions:   []string{"technology_innovation", "competition_analysis_weight"},
	},
	{
		Key:         "investment_criteria",
		Title:       "Investment Criteria",
		Description: "Your investment approach and risk tolerance",
		Questions:   []string{"funding_stage_comfort", "risk_tolerance", "social_impact_importance"},
	},
}

var questionsByKey = func() map[string]Question {
	m := make(map[string]Question, len(Questions))
	for _, q := range Questions {
		m[q.Key] = q
	}
	return m
}()

// QuestionByKey looks up a catalog question by its key
func QuestionByKey(key string) (Question, bool) {
	q, ok := questionsByKey[key]
	return q, ok
}

// QuestionKeys returns the set of all defined question keys
func QuestionKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(Questions))
	for _, q := range Questions {
		keys[q.Key] = struct{}{}
	}
	return keys
}

// QuestionsByCategory returns the full question descriptors of one category
func QuestionsByCategory(categoryKey string) []Question {
	for _, c := range Categories {
		if c.Key != categoryKey {
			continue
		}
		out := make([]Question, 0, len(c.Questions))
		for _, key := range c.Questions {
			if q, ok := questionsByKey[key]; ok {
				out = append(out, q)
			}
		}
		return out
	}
	return nil
}

package openrouter

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Mattiasalardi/VDP/models"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractGuidelines recovers a guidelines document from raw model output.
// Tries a direct parse first, then a fenced code block, then the widest
// brace-delimited substring.
func ExtractGuidelines(content string) (*models.GeneratedGuidelines, error) {
	candidates := [][]byte{[]byte(content)}

	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		candidates = append(candidates, []byte(m[1]))
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		candidates = append(candidates, []byte(content[start:end+1]))
	}

	parsed := false
	for _, candidate := range candidates {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(candidate, &raw); err != nil {
			continue
		}
		parsed = true

		categoriesJSON, ok := raw["categories"]
		if !ok {
			continue
		}
		var categories []models.GuidelineCategory
		if err := json.Unmarshal(categoriesJSON, &categories); err != nil {
			continue
		}
		if len(categories) == 0 {
			continue
		}
		return &models.GeneratedGuidelines{Categories: categories}, nil
	}

	if parsed {
		return nil, ErrInvalidStructure
	}
	return nil, ErrMalformedResponse
}

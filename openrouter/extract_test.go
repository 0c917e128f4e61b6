package openrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{"categories":[{"section":"team_assessment","name":"Team Assessment","weight":1.0,"criteria":["a"],"red_flags":["b"],"scoring_guide":{"1-3":"w","4-5":"x","6-7":"y","8-10":"z"}}]}`

func TestExtractDirectJSON(t *testing.T) {
	guidelines, err := ExtractGuidelines(validDoc)
	require.NoError(t, err)
	require.Len(t, guidelines.Categories, 1)
	assert.Equal(t, "team_assessment", guidelines.Categories[0].Section)
	assert.Equal(t, 1.0, guidelines.Categories[0].Weight)
	assert.Equal(t, "z", guidelines.Categories[0].ScoringGuide.Range8To10)
}

func TestExtractFencedJSON(t *testing.T) {
	content := "Here are your guidelines:\n```json\n" + validDoc + "\n```\nLet me know if you need changes."
	guidelines, err := ExtractGuidelines(content)
	require.NoError(t, err)
	assert.Len(t, guidelines.Categories, 1)
}

func TestExtractFencedWithoutLanguageTag(t *testing.T) {
	content := "```\n" + validDoc + "\n```"
	guidelines, err := ExtractGuidelines(content)
	require.NoError(t, err)
	assert.Len(t, guidelines.Categories, 1)
}

func TestExtractBraceSubstring(t *testing.T) {
	content := "Sure! " + validDoc + " Hope this helps."
	guidelines, err := ExtractGuidelines(content)
	require.NoError(t, err)
	assert.Len(t, guidelines.Categories, 1)
}

func TestExtractNoJSON(t *testing.T) {
	_, err := ExtractGuidelines("I cannot help with that request.")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestExtractMissingCategories(t *testing.T) {
	_, err := ExtractGuidelines(`{"sections": []}`)
	assert.ErrorIs(t, err, ErrInvalidStructure)
}

func TestExtractEmptyCategories(t *testing.T) {
	_, err := ExtractGuidelines(`{"categories": []}`)
	assert.ErrorIs(t, err, ErrInvalidStructure)

	_, err = ExtractGuidelines(`{"categories": null}`)
	assert.ErrorIs(t, err, ErrInvalidStructure)
}

func TestExtractCategoriesWrongType(t *testing.T) {
	_, err := ExtractGuidelines(`{"categories": "none"}`)
	assert.ErrorIs(t, err, ErrInvalidStructure)
}

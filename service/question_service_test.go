package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mattiasalardi/VDP/models"
)

func TestValidateQuestionPayloadText(t *testing.T) {
	err := validateQuestionPayload("Describe your product", models.QuestionTypeText, nil)
	assert.NoError(t, err)

	err = validateQuestionPayload("   ", models.QuestionTypeText, nil)
	assert.Error(t, err)
}

func TestValidateQuestionPayloadUnknownType(t *testing.T) {
	err := validateQuestionPayload("Anything", models.QuestionType("dropdown"), nil)
	assert.Error(t, err)
}

func TestValidateQuestionPayloadMultipleChoice(t *testing.T) {
	err := validateQuestionPayload("Pick your stage", models.QuestionTypeMultipleChoice, models.QuestionOptions{
		"choices": []interface{}{"pre-seed", "seed", "series A"},
	})
	assert.NoError(t, err)

	err = validateQuestionPayload("Pick your stage", models.QuestionTypeMultipleChoice, models.QuestionOptions{
		"choices": []interface{}{"only-one"},
	})
	assert.Error(t, err)

	err = validateQuestionPayload("Pick your stage", models.QuestionTypeMultipleChoice, nil)
	assert.Error(t, err)
}

func TestValidateQuestionPayloadScale(t *testing.T) {
	err := validateQuestionPayload("Rate your traction", models.QuestionTypeScale, models.QuestionOptions{
		"min": float64(1), "max": float64(10),
	})
	assert.NoError(t, err)

	err = validateQuestionPayload("Rate your traction", models.QuestionTypeScale, models.QuestionOptions{
		"min": float64(10), "max": float64(1),
	})
	assert.Error(t, err)

	err = validateQuestionPayload("Rate your traction", models.QuestionTypeScale, nil)
	assert.Error(t, err)
}

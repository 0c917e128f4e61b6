package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/service"
)

// QuestionnaireHandler handles questionnaire CRUD within a program
type QuestionnaireHandler struct {
	questionnaireService *service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(questionnaireService *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireService: questionnaireService}
}

// QuestionnaireRequest represents the request body for creating or updating
// a questionnaire
type QuestionnaireRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CreateQuestionnaire handles POST /api/v1/programs/:programId/questionnaires
func (h *QuestionnaireHandler) CreateQuestionnaire(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	var req QuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	questionnaire, err := h.questionnaireService.CreateQuestionnaire(c.Request.Context(), auth.OrgID(c), programID, service.CreateQuestionnaireRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, questionnaire)
}

// ListQuestionnaires handles GET /api/v1/programs/:programId/questionnaires
func (h *QuestionnaireHandler) ListQuestionnaires(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	questionnaires, err := h.questionnaireService.ListQuestionnaires(c.Request.Context(), auth.OrgID(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, questionnaires)
}

// GetQuestionnaire handles GET /api/v1/programs/:programId/questionnaires/:questionnaireId
func (h *QuestionnaireHandler) GetQuestionnaire(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}
	questionnaireID, ok := pathID(c, "questionnaireId")
	if !ok {
		return
	}

	questionnaire, err := h.questionnaireService.GetQuestionnaire(c.Request.Context(), auth.OrgID(c), programID, questionnaireID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, questionnaire)
}

// UpdateQuestionnaire handles PUT /api/v1/programs/:programId/questionnaires/:questionnaireId
func (h *QuestionnaireHandler) UpdateQuestionnaire(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}
	questionnaireID, ok := pathID(c, "questionnaireId")
	if !ok {
		return
	}

	var req QuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	questionnaire, err := h.questionnaireService.UpdateQuestionnaire(c.Request.Context(), auth.OrgID(c), programID, questionnaireID, service.UpdateQuestionnaireRequest{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    isActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, questionnaire)
}

// DeleteQuestionnaire handles DELETE /api/v1/programs/:programId/questionnaires/:questionnaireId
func (h *QuestionnaireHandler) DeleteQuestionnaire(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}
	questionnaireID, ok := pathID(c, "questionnaireId")
	if !ok {
		return
	}

	if err := h.questionnaireService.DeleteQuestionnaire(c.Request.Context(), auth.OrgID(c), programID, questionnaireID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

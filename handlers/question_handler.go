package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/service"
)

// QuestionHandler handles question CRUD and ordering within a questionnaire
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func questionScope(c *gin.Context) (programID, questionnaireID int64, ok bool) {
	programID, ok = pathID(c, "programId")
	if !ok {
		return 0, 0, false
	}
	questionnaireID, ok = pathID(c, "questionnaireId")
	if !ok {
		return 0, 0, false
	}
	return programID, questionnaireID, true
}

// CreateQuestionRequest represents the request body for creating a question
type CreateQuestionRequest struct {
	Text            string                 `json:"text" binding:"required"`
	QuestionType    string                 `json:"question_type" binding:"required"`
	IsRequired      bool                   `json:"is_required"`
	OrderIndex      *int                   `json:"order_index"`
	Options         map[string]interface{} `json:"options"`
	ValidationRules map[string]interface{} `json:"validation_rules"`
}

// CreateQuestion handles POST .../questionnaires/:questionnaireId/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	programID, questionnaireID, ok := questionScope(c)
	if !ok {
		return
	}

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), auth.OrgID(c), programID, questionnaireID, service.CreateQuestionRequest{
		Text:            req.Text,
		QuestionType:    models.QuestionType(req.QuestionType),
		IsRequired:      req.IsRequired,
		OrderIndex:      req.OrderIndex,
		Options:         req.Options,
		ValidationRules: req.ValidationRules,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, question)
}

// ListQuestions handles GET .../questionnaires/:questionnaireId/questions
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	programID, questionnaireID, ok := questionScope(c)
	if !ok {
		return
	}

	questions, err := h.questionService.ListQuestions(c.Request.Context(), auth.OrgID(c), programID, questionnaireID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, questions)
}

// UpdateQuestionRequest represents the request body for updating a question
type UpdateQuestionRequest struct {
	Text            string                 `json:"text" binding:"required"`
	QuestionType    string                 `json:"question_type" binding:"required"`
	IsRequired      bool                   `json:"is_required"`
	Options         map[string]interface{} `json:"options"`
	ValidationRules map[string]interface{} `json:"validation_rules"`
}

// UpdateQuestion handles PUT .../questions/:questionId
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	programID, questionnaireID, ok := questionScope(c)
	if !ok {
		return
	}
	questionID, ok := pathID(c, "questionId")
	if !ok {
		return
	}

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	question, err := h.questionService.UpdateQuestion(c.Request.Context(), auth.OrgID(c), programID, questionnaireID, questionID, service.UpdateQuestionRequest{
		Text:            req.Text,
		QuestionType:    models.QuestionType(req.QuestionType),
		IsRequired:      req.IsRequired,
		Options:         req.Options,
		ValidationRules: req.ValidationRules,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, question)
}

// MoveQuestionRequest represents the request body for moving a question
type MoveQuestionRequest struct {
	NewIndex *int `json:"new_index" binding:"required"`
}

// MoveQuestion handles PUT .../questions/:questionId/move
func (h *QuestionHandler) MoveQuestion(c *gin.Context) {
	programID, questionnaireID, ok := questionScope(c)
	if !ok {
		return
	}
	questionID, ok := pathID(c, "questionId")
	if !ok {
		return
	}

	var req MoveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.questionService.MoveQuestion(c.Request.Context(), auth.OrgID(c), programID, questionnaireID, questionID, *req.NewIndex); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReorderQuestionsRequest represents the request body for a full reorder
type ReorderQuestionsRequest struct {
	QuestionIDs []int64 `json:"question_ids" binding:"required"`
}

// ReorderQuestions handles PUT .../questions/reorder
func (h *QuestionHandler) ReorderQuestions(c *gin.Context) {
	programID, questionnaireID, ok := questionScope(c)
	if !ok {
		return
	}

	var req ReorderQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.questionService.ReorderQuestions(c.Request.Context(), auth.OrgID(c), programID, questionnaireID, req.QuestionIDs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteQuestion handles DELETE .../questions/:questionId
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	programID, questionnaireID, ok := questionScope(c)
	if !ok {
		return
	}
	questionID, ok := pathID(c, "questionId")
	if !ok {
		return
	}

	if err := h.questionService.DeleteQuestion(c.Request.Context(), auth.OrgID(c), programID, questionnaireID, questionID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

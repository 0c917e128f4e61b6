package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/catalog"
	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/service"
)

// CalibrationHandler handles the accelerator preference questionnaire
type CalibrationHandler struct {
	calibrationService *service.CalibrationService
}

// NewCalibrationHandler creates a new calibration handler
func NewCalibrationHandler(calibrationService *service.CalibrationService) *CalibrationHandler {
	return &CalibrationHandler{calibrationService: calibrationService}
}

// GetCatalog handles GET /api/v1/calibration/questions. The catalog is
// static configuration, so no program scope or database read is involved.
func (h *CalibrationHandler) GetCatalog(c *gin.Context) {
	respondOK(c, gin.H{
		"questions":  catalog.Questions,
		"categories": catalog.Categories,
	})
}

// SaveAnswerRequest represents the request body for saving one answer
type SaveAnswerRequest struct {
	QuestionKey string             `json:"question_key" binding:"required"`
	AnswerValue models.AnswerValue `json:"answer_value" binding:"required"`
}

// SaveAnswer handles PUT /api/v1/programs/:programId/calibration/answers
func (h *CalibrationHandler) SaveAnswer(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	var req SaveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	answer, err := h.calibrationService.SaveAnswer(c.Request.Context(), auth.OrgID(c), programID, service.SaveAnswerRequest{
		QuestionKey: req.QuestionKey,
		AnswerValue: req.AnswerValue,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, answer)
}

// SaveAnswersRequest represents the request body for a batch upsert
type SaveAnswersRequest struct {
	Answers []SaveAnswerRequest `json:"answers" binding:"required,dive"`
}

// SaveAnswers handles PUT /api/v1/programs/:programId/calibration/answers/batch
func (h *CalibrationHandler) SaveAnswers(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	var req SaveAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	reqs := make([]service.SaveAnswerRequest, 0, len(req.Answers))
	for _, a := range req.Answers {
		reqs = append(reqs, service.SaveAnswerRequest{
			QuestionKey: a.QuestionKey,
			AnswerValue: a.AnswerValue,
		})
	}

	answers, err := h.calibrationService.SaveAnswers(c.Request.Context(), auth.OrgID(c), programID, reqs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"answers": answers, "saved": len(answers)})
}

// DeleteAnswer handles DELETE /api/v1/programs/:programId/calibration/answers/:questionKey
func (h *CalibrationHandler) DeleteAnswer(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	err := h.calibrationService.DeleteAnswer(c.Request.Context(), auth.OrgID(c), programID, c.Param("questionKey"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSession handles GET /api/v1/programs/:programId/calibration/session
func (h *CalibrationHandler) GetSession(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	session, err := h.calibrationService.GetSession(c.Request.Context(), auth.OrgID(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, session)
}

// ListAnswers handles GET /api/v1/programs/:programId/calibration/answers
func (h *CalibrationHandler) ListAnswers(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	answers, err := h.calibrationService.ListAnswers(c.Request.Context(), auth.OrgID(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, answers)
}

// CompletionStatus handles GET /api/v1/programs/:programId/calibration/status
func (h *CalibrationHandler) CompletionStatus(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	status, err := h.calibrationService.CompletionStatus(c.Request.Context(), auth.OrgID(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, status)
}

// Reset handles DELETE /api/v1/programs/:programId/calibration/answers
func (h *CalibrationHandler) Reset(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	if err := h.calibrationService.Reset(c.Request.Context(), auth.OrgID(c), programID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

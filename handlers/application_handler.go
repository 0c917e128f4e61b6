package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/service"
)

// ApplicationHandler handles startup applications. Management endpoints are
// authenticated; the applicant endpoints are public and keyed by the
// application's unique_id.
type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// CreateApplicationRequest represents the request body for opening an
// application slot
type CreateApplicationRequest struct {
	QuestionnaireID int64  `json:"questionnaire_id" binding:"required"`
	StartupName     string `json:"startup_name" binding:"required"`
	ContactEmail    string `json:"contact_email" binding:"required,email"`
}

// CreateApplication handles POST /api/v1/programs/:programId/applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	app, err := h.applicationService.CreateApplication(c.Request.Context(), auth.OrgID(c), programID, service.CreateApplicationRequest{
		QuestionnaireID: req.QuestionnaireID,
		StartupName:     req.StartupName,
		ContactEmail:    req.ContactEmail,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, app)
}

// ListApplications handles GET /api/v1/programs/:programId/applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	apps, err := h.applicationService.ListApplications(c.Request.Context(), auth.OrgID(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, apps)
}

// GetPublicApplication handles GET /api/v1/apply/:uniqueId
func (h *ApplicationHandler) GetPublicApplication(c *gin.Context) {
	view, err := h.applicationService.GetPublicApplication(c.Request.Context(), c.Param("uniqueId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, view)
}

// SaveResponseRequest represents the request body for saving one answer
type SaveResponseRequest struct {
	QuestionID int64                `json:"question_id" binding:"required"`
	Value      models.ResponseValue `json:"value" binding:"required"`
}

// SaveResponse handles PUT /api/v1/apply/:uniqueId/responses
func (h *ApplicationHandler) SaveResponse(c *gin.Context) {
	var req SaveResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	response, err := h.applicationService.SaveResponse(c.Request.Context(), c.Param("uniqueId"), req.QuestionID, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, response)
}

// Submit handles POST /api/v1/apply/:uniqueId/submit
func (h *ApplicationHandler) Submit(c *gin.Context) {
	app, err := h.applicationService.Submit(c.Request.Context(), c.Param("uniqueId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, app)
}

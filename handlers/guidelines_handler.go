package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/openrouter"
	"github.com/Mattiasalardi/VDP/service"
)

// GuidelinesHandler handles scoring guideline generation, versioning and
// activation
type GuidelinesHandler struct {
	guidelinesService *service.GuidelinesService
}

// NewGuidelinesHandler creates a new guidelines handler
func NewGuidelinesHandler(guidelinesService *service.GuidelinesService) *GuidelinesHandler {
	return &GuidelinesHandler{guidelinesService: guidelinesService}
}

// GenerateRequest represents the request body for AI generation
type GenerateRequest struct {
	Model string `json:"model"`
}

// Generate handles POST /api/v1/programs/:programId/guidelines/generate
func (h *GuidelinesHandler) Generate(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	// Body is optional; an empty body means the default model.
	var req GenerateRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.guidelinesService.GenerateGuidelines(c.Request.Context(), service.GenerateGuidelinesRequest{
		OrganizationID: auth.OrgID(c),
		ProgramID:      programID,
		Model:          req.Model,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// GenerateAndSaveRequest asks for a combined generate plus save
type GenerateAndSaveRequest struct {
	Model    string `json:"model"`
	Activate bool   `json:"activate"`
}

// GenerateAndSave handles POST /api/v1/programs/:programId/guidelines/generate-and-save
func (h *GuidelinesHandler) GenerateAndSave(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	var req GenerateAndSaveRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.guidelinesService.GenerateAndSave(c.Request.Context(), service.GenerateGuidelinesRequest{
		OrganizationID: auth.OrgID(c),
		ProgramID:      programID,
		Model:          req.Model,
	}, req.Activate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, result)
}

// Status handles GET /api/v1/programs/:programId/guidelines/status
func (h *GuidelinesHandler) Status(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	status, err := h.guidelinesService.GetStatus(c.Request.Context(), auth.OrgID(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, status)
}

// SaveRequest represents the request body for persisting guidelines
type SaveRequest struct {
	Categories []models.GuidelineCategory `json:"categories" binding:"required"`
	Activate   bool                       `json:"activate"`
}

// Save handles POST /api/v1/programs/:programId/guidelines
func (h *GuidelinesHandler) Save(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	version, err := h.guidelinesService.SaveGuidelines(c.Request.Context(), service.SaveGuidelinesRequest{
		OrganizationID: auth.OrgID(c),
		ProgramID:      programID,
		Guidelines:     models.GeneratedGuidelines{Categories: req.Categories},
		Activate:       req.Activate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"version": version, "is_active": req.Activate})
}

// Activate handles PUT /api/v1/programs/:programId/guidelines/versions/:version/activate
func (h *GuidelinesHandler) Activate(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}
	version, ok := pathID(c, "version")
	if !ok {
		return
	}

	if err := h.guidelinesService.ActivateVersion(c.Request.Context(), auth.OrgID(c), programID, int(version)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetActive handles GET /api/v1/programs/:programId/guidelines/active
func (h *GuidelinesHandler) GetActive(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	guidelines, err := h.guidelinesService.GetActiveGuidelines(c.Request.Context(), auth.OrgID(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, guidelines)
}

// GetVersion handles GET /api/v1/programs/:programId/guidelines/versions/:version
func (h *GuidelinesHandler) GetVersion(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}
	version, ok := pathID(c, "version")
	if !ok {
		return
	}

	guidelines, err := h.guidelinesService.GetVersion(c.Request.Context(), auth.OrgID(c), programID, int(version))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, guidelines)
}

// History handles GET /api/v1/programs/:programId/guidelines/versions
func (h *GuidelinesHandler) History(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	versions, err := h.guidelinesService.History(c.Request.Context(), auth.OrgID(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, versions)
}

// Models handles GET /api/v1/guidelines/models
func (h *GuidelinesHandler) Models(c *gin.Context) {
	available := make([]gin.H, 0, len(openrouter.SupportedModels))
	for alias, route := range openrouter.SupportedModels {
		available = append(available, gin.H{"alias": alias, "route": route})
	}
	respondOK(c, gin.H{
		"default": openrouter.DefaultModel,
		"models":  available,
	})
}

// CacheStats handles GET /api/v1/guidelines/cache
func (h *GuidelinesHandler) CacheStats(c *gin.Context) {
	respondOK(c, h.guidelinesService.CacheStats(c.Request.Context()))
}

// ClearCache handles DELETE /api/v1/guidelines/cache
func (h *GuidelinesHandler) ClearCache(c *gin.Context) {
	h.guidelinesService.ClearCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

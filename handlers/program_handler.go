package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/service"
)

// ProgramHandler handles accelerator program CRUD requests
type ProgramHandler struct {
	programService *service.ProgramService
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(programService *service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// CreateProgramRequest represents the request body for creating a program
type CreateProgramRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// CreateProgram handles POST /api/v1/programs
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), auth.OrgID(c), service.CreateProgramRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, program)
}

// ListPrograms handles GET /api/v1/programs
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programService.ListPrograms(c.Request.Context(), auth.OrgID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, programs)
}

// GetProgram handles GET /api/v1/programs/:programId
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), auth.OrgID(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, program)
}

// UpdateProgramRequest represents the request body for updating a program
type UpdateProgramRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
}

// UpdateProgram handles PUT /api/v1/programs/:programId
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	program, err := h.programService.UpdateProgram(c.Request.Context(), auth.OrgID(c), programID, service.UpdateProgramRequest{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, program)
}

// DeleteProgram handles DELETE /api/v1/programs/:programId. The delete is
// soft unless ?hard=true is passed.
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	programID, ok := pathID(c, "programId")
	if !ok {
		return
	}

	hard := c.Query("hard") == "true"
	if err := h.programService.DeleteProgram(c.Request.Context(), auth.OrgID(c), programID, hard); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

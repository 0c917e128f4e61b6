package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/service"
)

// AuthHandler handles registration, login and organization profile requests
type AuthHandler struct {
	orgService *service.OrganizationService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(orgService *service.OrganizationService) *AuthHandler {
	return &AuthHandler{orgService: orgService}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	org, err := h.orgService.Register(c.Request.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, org)
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.orgService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, result)
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so logout
// is an acknowledgment; the client discards its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	respondOK(c, gin.H{"message": "logged out"})
}

// GetProfile handles GET /api/v1/organization and GET /api/v1/auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	org, err := h.orgService.GetProfile(c.Request.Context(), auth.OrgID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, org)
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
}

// UpdateProfile handles PUT /api/v1/organization
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	org, err := h.orgService.UpdateProfile(c.Request.Context(), auth.OrgID(c), service.UpdateProfileRequest{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, org)
}

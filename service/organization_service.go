package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/repository"
)

// OrganizationService handles registration, login and profile management
type OrganizationService struct {
	orgRepo *repository.OrganizationRepository
	tokens  *auth.TokenManager
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgRepo *repository.OrganizationRepository, tokens *auth.TokenManager) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo, tokens: tokens}
}

// RegisterRequest creates a new organization account
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// Register creates an organization with a hashed password
func (s *OrganizationService) Register(ctx context.Context, req RegisterRequest) (*models.Organization, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	org := &models.Organization{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	zap.L().Info("organization registered", zap.Int64("org_id", org.ID))
	return org, nil
}

// LoginResult carries the access token issued on successful login
type LoginResult struct {
	Token        string               `json:"token"`
	Organization *models.Organization `json:"organization"`
}

// Login verifies credentials and issues a JWT
func (s *OrganizationService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	org, err := s.orgRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !org.IsActive || !auth.CheckPassword(org.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(org.ID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, Organization: org}, nil
}

// GetProfile returns the organization behind an authenticated request
func (s *OrganizationService) GetProfile(ctx context.Context, orgID int64) (*models.Organization, error) {
	return s.orgRepo.GetByID(ctx, orgID)
}

// UpdateProfileRequest changes editable profile fields
type UpdateProfileRequest struct {
	Name        string
	Description *string
	Website     *string
}

// UpdateProfile updates the organization's profile
func (s *OrganizationService) UpdateProfile(ctx context.Context, orgID int64, req UpdateProfileRequest) (*models.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	org.Name = strings.TrimSpace(req.Name)
	org.Description = req.Description
	org.Website = req.Website
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

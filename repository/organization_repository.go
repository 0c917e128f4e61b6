package repository

import (
	"context"

	"github.com/Mattiasalardi/VDP/models"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (name, email, password_hash, description, website, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		org.Name,
		org.Email,
		org.PasswordHash,
		org.Description,
		org.Website,
		org.IsActive,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)

	return err
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	org := &models.Organization{}
	query := `
		SELECT id, name, email, password_hash, description, website, is_active, created_at, updated_at
		FROM organizations
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&org.ID,
		&org.Name,
		&org.Email,
		&org.PasswordHash,
		&org.Description,
		&org.Website,
		&org.IsActive,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return org, nil
}

// GetByEmail retrieves an organization by its login email
func (r *OrganizationRepository) GetByEmail(ctx context.Context, email string) (*models.Organization, error) {
	org := &models.Organization{}
	query := `
		SELECT id, name, email, password_hash, description, website, is_active, created_at, updated_at
		FROM organizations
		WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&org.ID,
		&org.Name,
		&org.Email,
		&org.PasswordHash,
		&org.Description,
		&org.Website,
		&org.IsActive,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return org, nil
}

// Update updates an organization's profile fields
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	query := `
		UPDATE organizations SET
			name = $2,
			description = $3,
			website = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRow(ctx, query, org.ID, org.Name, org.Description, org.Website).Scan(&org.UpdatedAt)
}

package models

import (
	"time"
)

// Organization represents an accelerator organization (tenant)
type Organization struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Description  *string   `json:"description,omitempty"`
	Website      *string   `json:"website,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Package entity provides base types shared by catalog entities.
package entity

import (
	"context"
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
)

// Validatable is implemented by entities that check their own invariants.
type Validatable interface {
	Validate(ctx context.Context) error
}

// Catalog is the base type for reference data (products, clients, suppliers).
type Catalog struct {
	// ID is the UUIDv7 primary key
	ID id.ID `db:"id" json:"id"`

	// Code is a human-readable identifier, unique per catalog
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCatalog creates a new Catalog with a generated ID.
func NewCatalog(code, name string) Catalog {
	now := time.Now().UTC()
	return Catalog{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate implements Validatable.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

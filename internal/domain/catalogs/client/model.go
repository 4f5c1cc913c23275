// Package client provides the client (customer) catalog.
package client

import (
	"context"

	"almacen/internal/core/entity"
)

// Client represents a customer placing orders.
type Client struct {
	entity.Catalog

	// Email is the billing contact (optional)
	Email *string `db:"email" json:"email,omitempty"`

	// Phone is the contact phone (optional)
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Address is the delivery address (optional)
	Address *string `db:"address" json:"address,omitempty"`
}

// NewClient creates a new Client with required fields.
func NewClient(code, name string) *Client {
	return &Client{Catalog: entity.NewCatalog(code, name)}
}

// Validate implements entity.Validatable.
func (c *Client) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

package client

import (
	"context"

	"almacen/internal/core/id"
)

// Repository defines the interface for client persistence.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, clientID id.ID) (*Client, error)
	GetByCode(ctx context.Context, code string) (*Client, error)
	List(ctx context.Context, search string, limit, offset int) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
}

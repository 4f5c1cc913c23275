package catalog_repo

import (
	"context"

	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/client"
	"almacen/internal/infrastructure/storage/postgres"
)

const clientTable = "cat_clients"

// ClientRepo implements client.Repository.
type ClientRepo struct {
	base *baseCatalogRepo[*client.Client]
}

// NewClientRepo creates a new client repository.
func NewClientRepo(txManager *postgres.TxManager) *ClientRepo {
	return &ClientRepo{
		base: newBaseCatalogRepo(
			txManager,
			clientTable,
			postgres.ExtractDBColumns[client.Client](),
			func() *client.Client { return &client.Client{} },
		),
	}
}

func (r *ClientRepo) Create(ctx context.Context, c *client.Client) error {
	return r.base.create(ctx, c)
}

func (r *ClientRepo) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	return r.base.getByID(ctx, clientID)
}

func (r *ClientRepo) GetByCode(ctx context.Context, code string) (*client.Client, error) {
	return r.base.getByCode(ctx, code)
}

func (r *ClientRepo) List(ctx context.Context, search string, limit, offset int) ([]*client.Client, error) {
	return r.base.list(ctx, search, limit, offset)
}

func (r *ClientRepo) Update(ctx context.Context, c *client.Client) error {
	return r.base.update(ctx, c)
}

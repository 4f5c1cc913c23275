package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/product"
	"almacen/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	base *baseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		base: newBaseCatalogRepo(
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	return r.base.create(ctx, p)
}

func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.base.getByID(ctx, productID)
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	return r.base.getByCode(ctx, code)
}

func (r *ProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*product.Product, error) {
	return r.base.list(ctx, search, limit, offset)
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	return r.base.update(ctx, p)
}

// ListBySupplier retrieves products belonging to a supplier, ordered by name.
func (r *ProductRepo) ListBySupplier(ctx context.Context, supplierID id.ID) ([]*product.Product, error) {
	q := r.base.baseSelect().
		Where(squirrel.Eq{"supplier_id": supplierID}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, r.base.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by supplier: %w", err)
	}
	return items, nil
}

package catalog_repo

import (
	"context"

	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/supplier"
	"almacen/internal/infrastructure/storage/postgres"
)

const supplierTable = "cat_suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	base *baseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txManager *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		base: newBaseCatalogRepo(
			txManager,
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

func (r *SupplierRepo) Create(ctx context.Context, s *supplier.Supplier) error {
	return r.base.create(ctx, s)
}

func (r *SupplierRepo) GetByID(ctx context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	return r.base.getByID(ctx, supplierID)
}

func (r *SupplierRepo) GetByCode(ctx context.Context, code string) (*supplier.Supplier, error) {
	return r.base.getByCode(ctx, code)
}

func (r *SupplierRepo) List(ctx context.Context, search string, limit, offset int) ([]*supplier.Supplier, error) {
	return r.base.list(ctx, search, limit, offset)
}

func (r *SupplierRepo) Update(ctx context.Context, s *supplier.Supplier) error {
	return r.base.update(ctx, s)
}

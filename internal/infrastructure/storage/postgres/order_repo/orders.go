// Package order_repo provides the PostgreSQL implementation of the order
// repository. Orders are stored normalized (header + lines); reads join
// the catalogs so returned lines carry product, supplier and client names.
package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/orders"
	"almacen/internal/infrastructure/storage/postgres"
)

const (
	orderTable = "doc_orders"
	lineTable  = "doc_order_lines"
)

// OrderRepo implements orders.Repository.
type OrderRepo struct {
	txManager *postgres.TxManager
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txManager *postgres.TxManager) *OrderRepo {
	return &OrderRepo{txManager: txManager}
}

func (r *OrderRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the order header and its lines in one transaction and
// assigns the generated id to order.ID.
func (r *OrderRepo) Create(ctx context.Context, order *orders.Order) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := r.txManager.GetQuerier(ctx)

		sql, args, err := r.builder().
			Insert(orderTable).
			Columns("number", "client_id", "created_at").
			Values(order.Number, order.ClientID, order.CreatedAt).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert order: %w", err)
		}

		if err := querier.QueryRow(ctx, sql, args...).Scan(&order.ID); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		lineInsert := r.builder().
			Insert(lineTable).
			Columns("order_id", "line_no", "product_id", "quantity")
		for i, line := range order.Lines {
			lineInsert = lineInsert.Values(order.ID, i+1, line.ProductID, line.Quantity)
		}

		sql, args, err = lineInsert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert lines: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert lines: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an order with its lines.
func (r *OrderRepo) GetByID(ctx context.Context, orderID int64) (*orders.Order, error) {
	list, err := r.fetch(ctx, squirrel.Eq{"o.id": orderID}, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, apperror.NewNotFound("order", orderID)
	}
	return &list[0], nil
}

// List retrieves orders matching the filter, newest first.
func (r *OrderRepo) List(ctx context.Context, filter orders.ListFilter) ([]orders.Order, error) {
	conds := squirrel.And{}
	if filter.FromDate != nil {
		conds = append(conds, squirrel.GtOrEq{"o.created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		conds = append(conds, squirrel.Lt{"o.created_at": *filter.ToDate})
	}
	return r.fetch(ctx, conds, filter.Limit, filter.Offset)
}

// ListAll retrieves every order with lines, for report generation.
func (r *OrderRepo) ListAll(ctx context.Context) ([]orders.Order, error) {
	return r.fetch(ctx, nil, 0, 0)
}

// fetch loads order headers matching cond, then attaches lines with
// catalog names denormalized in.
func (r *OrderRepo) fetch(ctx context.Context, cond any, limit, offset int) ([]orders.Order, error) {
	q := r.builder().
		Select("o.id", "o.number", "o.client_id", "c.name AS client_name", "o.created_at").
		From(orderTable + " o").
		Join("cat_clients c ON c.id = o.client_id").
		OrderBy("o.created_at DESC", "o.id DESC")

	if cond != nil {
		q = q.Where(cond)
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)

	var list []orders.Order
	if err := pgxscan.Select(ctx, querier, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	orderIDs := make([]int64, len(list))
	index := make(map[int64]*orders.Order, len(list))
	for i := range list {
		orderIDs[i] = list[i].ID
		index[list[i].ID] = &list[i]
	}

	lineQ := r.builder().
		Select(
			"l.order_id",
			"l.product_id",
			"p.code AS product_code",
			"p.name AS description",
			"p.unit",
			"p.supplier_id",
			"COALESCE(s.name, '') AS supplier_name",
			"l.quantity",
		).
		From(lineTable + " l").
		Join("cat_products p ON p.id = l.product_id").
		LeftJoin("cat_suppliers s ON s.id = p.supplier_id").
		Where(squirrel.Eq{"l.order_id": orderIDs}).
		OrderBy("l.order_id", "l.line_no")

	sql, args, err = lineQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build line query: %w", err)
	}

	var lines []lineRow
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select lines: %w", err)
	}

	for _, line := range lines {
		if order, ok := index[line.OrderID]; ok {
			order.Lines = append(order.Lines, line.Line)
		}
	}
	return list, nil
}

// lineRow carries the order reference next to the denormalized line.
type lineRow struct {
	OrderID int64 `db:"order_id"`
	orders.Line
}

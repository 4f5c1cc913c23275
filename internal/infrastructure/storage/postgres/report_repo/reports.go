// Package report_repo provides the PostgreSQL implementation of the
// reporting repository. Reports are append-only rows with the full report
// body stored as a (possibly compressed) JSON snapshot; reported-order
// markers live in their own table keyed by order id, which is what makes
// the at-most-once claim enforceable by the database.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/orders"
	"almacen/internal/domain/reporting"
	"almacen/internal/infrastructure/storage/postgres"
)

const (
	reportTable = "rep_generated_reports"
	markerTable = "rep_reported_orders"
)

// ReportRepo implements reporting.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
	codec     *postgres.SnapshotCodec
	orders    orders.Repository
}

// NewReportRepo creates a new report repository. Order reads are
// delegated to the order repository so the catalog joins live in one place.
func NewReportRepo(txManager *postgres.TxManager, codec *postgres.SnapshotCodec, orderRepo orders.Repository) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		codec:     codec,
		orders:    orderRepo,
	}
}

func (r *ReportRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ListOrders returns every order with lines.
func (r *ReportRepo) ListOrders(ctx context.Context) ([]orders.Order, error) {
	return r.orders.ListAll(ctx)
}

// reportRow is the storage projection of a report. Aggregate views are
// inside the snapshot, not in columns.
type reportRow struct {
	ID           string                   `db:"id"`
	Kind         string                   `db:"kind"`
	GeneratedAt  time.Time                `db:"generated_at"`
	PeriodStart  time.Time                `db:"period_start"`
	PeriodEnd    time.Time                `db:"period_end"`
	OrderIDs     []int64                  `db:"order_ids"`
	Snapshot     []byte                   `db:"snapshot"`
	SnapshotAlgo postgres.CompressionAlgo `db:"snapshot_algo"`
}

var reportCols = []string{
	"id", "kind", "generated_at", "period_start", "period_end",
	"order_ids", "snapshot", "snapshot_algo",
}

func (r *ReportRepo) decode(row *reportRow) (*reporting.GeneratedReport, error) {
	var report reporting.GeneratedReport
	if err := r.codec.Decode(row.Snapshot, row.SnapshotAlgo, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", row.ID, err)
	}
	return &report, nil
}

// ListReports returns all generated reports, newest first.
func (r *ReportRepo) ListReports(ctx context.Context) ([]*reporting.GeneratedReport, error) {
	sql, args, err := r.builder().
		Select(reportCols...).
		From(reportTable).
		OrderBy("generated_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reportRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select reports: %w", err)
	}

	list := make([]*reporting.GeneratedReport, 0, len(rows))
	for i := range rows {
		report, err := r.decode(&rows[i])
		if err != nil {
			return nil, err
		}
		list = append(list, report)
	}
	return list, nil
}

// GetReport returns a single report by id.
func (r *ReportRepo) GetReport(ctx context.Context, reportID string) (*reporting.GeneratedReport, error) {
	sql, args, err := r.builder().
		Select(reportCols...).
		From(reportTable).
		Where(squirrel.Eq{"id": reportID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row reportRow
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("report", reportID)
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return r.decode(&row)
}

// ReportedOrderIDs returns the full marker set: order id -> report id.
func (r *ReportRepo) ReportedOrderIDs(ctx context.Context) (map[int64]string, error) {
	sql, args, err := r.builder().
		Select("order_id", "report_id").
		From(markerTable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select markers: %w", err)
	}
	defer rows.Close()

	markers := make(map[int64]string)
	for rows.Next() {
		var orderID int64
		var reportID string
		if err := rows.Scan(&orderID, &reportID); err != nil {
			return nil, fmt.Errorf("scan marker: %w", err)
		}
		markers[orderID] = reportID
	}
	return markers, rows.Err()
}

// SaveReport persists the report and claims a marker for every included
// order in a single transaction. The claim is conditional: markers are
// inserted with ON CONFLICT DO NOTHING and the affected-row count is
// compared against the order count. A short claim means another report
// already owns some of the orders; the transaction rolls back and the
// conflicting ids are returned in an ORDER_ALREADY_REPORTED error.
func (r *ReportRepo) SaveReport(ctx context.Context, report *reporting.GeneratedReport) error {
	snapshot, algo, err := r.codec.Encode(report)
	if err != nil {
		return err
	}

	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := r.txManager.GetQuerier(ctx)

		sql, args, err := r.builder().
			Insert(reportTable).
			Columns(reportCols...).
			Values(
				report.ID, string(report.Kind), report.GeneratedAt,
				report.PeriodStart, report.PeriodEnd,
				report.OrderIDs, snapshot, algo,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert report: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert report: %w", err)
		}

		markerInsert := r.builder().
			Insert(markerTable).
			Columns("order_id", "report_id", "marked_at")
		for _, orderID := range report.OrderIDs {
			markerInsert = markerInsert.Values(orderID, report.ID, report.GeneratedAt)
		}

		sql, args, err = markerInsert.
			Suffix("ON CONFLICT (order_id) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert markers: %w", err)
		}

		result, err := querier.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("insert markers: %w", err)
		}

		if int(result.RowsAffected()) < len(report.OrderIDs) {
			conflicting, err := r.conflictingOrders(ctx, querier, report)
			if err != nil {
				return err
			}
			return apperror.NewAlreadyReported(conflicting)
		}
		return nil
	})
}

// conflictingOrders finds the orders from the report that are already
// claimed by a different report.
func (r *ReportRepo) conflictingOrders(ctx context.Context, querier postgres.Querier, report *reporting.GeneratedReport) ([]int64, error) {
	sql, args, err := r.builder().
		Select("order_id").
		From(markerTable).
		Where(squirrel.Eq{"order_id": report.OrderIDs}).
		Where(squirrel.NotEq{"report_id": report.ID}).
		OrderBy("order_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build conflict query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select conflicts: %w", err)
	}
	defer rows.Close()

	var conflicting []int64
	for rows.Next() {
		var orderID int64
		if err := rows.Scan(&orderID); err != nil {
			return nil, fmt.Errorf("scan conflict: %w", err)
		}
		conflicting = append(conflicting, orderID)
	}
	return conflicting, rows.Err()
}

// HasAutomaticReportEndingAt reports whether an automatic report whose
// period ends exactly at the given anchor already exists.
func (r *ReportRepo) HasAutomaticReportEndingAt(ctx context.Context, anchor time.Time) (bool, error) {
	sql, args, err := r.builder().
		Select("1").
		From(reportTable).
		Where(squirrel.Eq{"kind": string(reporting.KindAutomatic)}).
		Where(squirrel.Eq{"period_end": anchor}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query automatic report: %w", err)
	}
	return true, nil
}

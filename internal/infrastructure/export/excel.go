// Package export renders generated reports into downloadable formats.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"almacen/internal/domain/reporting"
)

const (
	sheetGeneral  = "General"
	sheetSupplier = "By Supplier"
	sheetOrders   = "Per Order"
)

// ExcelWriter renders a report as an xlsx workbook with one sheet per
// report view.
type ExcelWriter struct{}

// NewExcelWriter creates an Excel report writer.
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// ContentType returns the MIME type for xlsx downloads.
func (w *ExcelWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename suggests a download name for the report.
func (w *ExcelWriter) Filename(report *reporting.GeneratedReport) string {
	return fmt.Sprintf("report-%s.xlsx", report.ID)
}

// Report views selectable on export.
const (
	ViewGeneral    = "general"
	ViewBySupplier = "by-supplier"
	ViewPerOrder   = "per-order"
)

// Write renders the full workbook (all three views) into out.
func (w *ExcelWriter) Write(out io.Writer, report *reporting.GeneratedReport) error {
	return w.WriteView(out, report, "")
}

// WriteView renders the workbook into out. view selects a single report
// view; empty means all three.
func (w *ExcelWriter) WriteView(out io.Writer, report *reporting.GeneratedReport, view string) error {
	f := excelize.NewFile()
	defer f.Close()

	var first string
	switch view {
	case "", ViewGeneral:
		if err := w.writeGeneral(f, report); err != nil {
			return err
		}
		first = sheetGeneral
	}
	switch view {
	case "", ViewBySupplier:
		if err := w.writeBySupplier(f, report); err != nil {
			return err
		}
		if first == "" {
			first = sheetSupplier
		}
	}
	switch view {
	case "", ViewPerOrder:
		if err := w.writePerOrder(f, report); err != nil {
			return err
		}
		if first == "" {
			first = sheetOrders
		}
	}
	if first == "" {
		return fmt.Errorf("unknown report view %q", view)
	}

	// Drop the default sheet and land on the first rendered view.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(first)
	if err != nil {
		return fmt.Errorf("get sheet index: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (w *ExcelWriter) writeGeneral(f *excelize.File, report *reporting.GeneratedReport) error {
	if _, err := f.NewSheet(sheetGeneral); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	rows := [][]any{
		{"Report", report.ID},
		{"Kind", string(report.Kind)},
		{"Generated at", formatStamp(report.GeneratedAt)},
		{"Period start", formatStamp(report.PeriodStart)},
		{"Period end", formatStamp(report.PeriodEnd)},
		{},
		{"Total orders", report.General.TotalOrders},
		{"Total products", report.General.TotalProducts},
		{"Distinct clients", report.General.DistinctClients},
		{"First order", formatStamp(report.General.FirstOrderAt)},
		{"Last order", formatStamp(report.General.LastOrderAt)},
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetGeneral, cell, &row); err != nil {
			return fmt.Errorf("set row: %w", err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeBySupplier(f *excelize.File, report *reporting.GeneratedReport) error {
	if _, err := f.NewSheet(sheetSupplier); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	header := []any{"Supplier", "Product code", "Description", "Unit", "Quantity"}
	if err := f.SetSheetRow(sheetSupplier, "A1", &header); err != nil {
		return fmt.Errorf("set header: %w", err)
	}

	rowNo := 2
	for _, group := range report.BySupplier {
		for _, p := range group.Products {
			row := []any{group.SupplierName, p.Code, p.Description, p.Unit, p.Quantity.String()}
			cell, err := excelize.CoordinatesToCellName(1, rowNo)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheetSupplier, cell, &row); err != nil {
				return fmt.Errorf("set row: %w", err)
			}
			rowNo++
		}
	}
	return nil
}

func (w *ExcelWriter) writePerOrder(f *excelize.File, report *reporting.GeneratedReport) error {
	if _, err := f.NewSheet(sheetOrders); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	header := []any{"Order", "Number", "Created at", "Client", "Item", "Quantity"}
	if err := f.SetSheetRow(sheetOrders, "A1", &header); err != nil {
		return fmt.Errorf("set header: %w", err)
	}

	rowNo := 2
	for _, detail := range report.PerOrder {
		for _, item := range detail.Items {
			row := []any{
				detail.OrderID, detail.Number, formatStamp(detail.CreatedAt),
				detail.ClientName, item.Description, item.Quantity.String(),
			}
			cell, err := excelize.CoordinatesToCellName(1, rowNo)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheetOrders, cell, &row); err != nil {
				return fmt.Errorf("set row: %w", err)
			}
			rowNo++
		}
	}
	return nil
}

func formatStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

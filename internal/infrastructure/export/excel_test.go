package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"almacen/internal/core/id"
	"almacen/internal/domain/reporting"
)

func sampleReport() *reporting.GeneratedReport {
	stamp := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	return &reporting.GeneratedReport{
		ID:          "AUTO-20240110180000-a1b2c3d4",
		Kind:        reporting.KindAutomatic,
		GeneratedAt: stamp,
		PeriodStart: stamp.AddDate(0, 0, -7),
		PeriodEnd:   stamp,
		OrderIDs:    []int64{1, 2},
		General: reporting.GeneralSummary{
			TotalOrders:     2,
			TotalProducts:   3,
			DistinctClients: 1,
			FirstOrderAt:    stamp.AddDate(0, 0, -3),
			LastOrderAt:     stamp.AddDate(0, 0, -1),
		},
		BySupplier: []reporting.SupplierGroup{
			{
				SupplierID:   id.New(),
				SupplierName: "Molinos SA",
				Products: []reporting.ProductTotal{
					{ProductID: id.New(), Code: "FL-01", Description: "Harina 25kg", Unit: "kg", Quantity: decimal.NewFromInt(5)},
				},
			},
		},
		PerOrder: []reporting.OrderDetail{
			{
				OrderID:    2,
				Number:     "ORD-2024-00002",
				CreatedAt:  stamp.AddDate(0, 0, -1),
				ClientName: "Panaderia Luz",
				Items: []reporting.DetailItem{
					{Description: "Harina 25kg", Quantity: decimal.NewFromInt(3)},
				},
			},
			{
				OrderID:    1,
				Number:     "ORD-2024-00001",
				CreatedAt:  stamp.AddDate(0, 0, -3),
				ClientName: "Panaderia Luz",
				Items: []reporting.DetailItem{
					{Description: "Harina 25kg", Quantity: decimal.NewFromInt(2)},
				},
			},
		},
	}
}

func TestExcelWriter_WorkbookLayout(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, NewExcelWriter().Write(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{sheetGeneral, sheetSupplier, sheetOrders}, sheets)

	reportID, err := f.GetCellValue(sheetGeneral, "B1")
	require.NoError(t, err)
	assert.Equal(t, report.ID, reportID)

	supplierName, err := f.GetCellValue(sheetSupplier, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Molinos SA", supplierName)

	qty, err := f.GetCellValue(sheetSupplier, "E2")
	require.NoError(t, err)
	assert.Equal(t, "5", qty)

	// Per-order rows preserve report ordering, newest order first.
	firstNumber, err := f.GetCellValue(sheetOrders, "B2")
	require.NoError(t, err)
	assert.Equal(t, "ORD-2024-00002", firstNumber)
}

func TestExcelWriter_SingleView(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, NewExcelWriter().WriteView(&buf, report, ViewBySupplier))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetSupplier}, f.GetSheetList())

	var empty bytes.Buffer
	assert.Error(t, NewExcelWriter().WriteView(&empty, report, "weekly"))
}

func TestExcelWriter_FilenameAndContentType(t *testing.T) {
	w := NewExcelWriter()
	report := sampleReport()

	assert.Equal(t, "report-AUTO-20240110180000-a1b2c3d4.xlsx", w.Filename(report))
	assert.Contains(t, w.ContentType(), "spreadsheetml")
}

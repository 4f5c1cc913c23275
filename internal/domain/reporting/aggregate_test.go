package reporting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacen/internal/core/id"
	"almacen/internal/domain/orders"
)

var (
	clientA = id.MustParse("018d0000-0000-7000-8000-00000000000a")
	clientB = id.MustParse("018d0000-0000-7000-8000-00000000000b")

	supplier1 = id.MustParse("018d0000-0000-7000-8000-000000000001")
	supplier2 = id.MustParse("018d0000-0000-7000-8000-000000000002")

	productFlour = id.MustParse("018d0000-0000-7000-8000-000000000011")
	productMilk  = id.MustParse("018d0000-0000-7000-8000-000000000012")
	productSoap  = id.MustParse("018d0000-0000-7000-8000-000000000013")
)

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func line(productID id.ID, code, desc string, supplierID *id.ID, supplierName string, quantity int64) orders.Line {
	return orders.Line{
		ProductID:    productID,
		ProductCode:  code,
		Description:  desc,
		Unit:         "ud",
		SupplierID:   supplierID,
		SupplierName: supplierName,
		Quantity:     qty(quantity),
	}
}

func sampleOrders() []orders.Order {
	return []orders.Order{
		{
			ID:         1,
			Number:     "ORD-001",
			ClientID:   clientA,
			ClientName: "Bar Paco",
			CreatedAt:  ts("2024-01-08T10:00:00Z"),
			Lines: []orders.Line{
				line(productFlour, "FL-01", "Harina 25kg", &supplier1, "Molinos SA", 3),
				line(productMilk, "MK-01", "Leche entera", &supplier2, "Lacteos SL", 12),
			},
		},
		{
			ID:         2,
			Number:     "ORD-002",
			ClientID:   clientB,
			ClientName: "Cafetería Luz",
			CreatedAt:  ts("2024-01-09T16:30:00Z"),
			Lines: []orders.Line{
				line(productFlour, "FL-01", "Harina 25kg", &supplier1, "Molinos SA", 2),
				// No resolvable supplier: skipped by grouping, not errored.
				line(productSoap, "SP-01", "Jabón", nil, "", 5),
			},
		},
		{
			ID:         3,
			Number:     "ORD-003",
			ClientID:   clientA,
			ClientName: "Bar Paco",
			CreatedAt:  ts("2024-01-10T09:00:00Z"),
			Lines: []orders.Line{
				line(productMilk, "MK-01", "Leche entera", &supplier2, "Lacteos SL", 6),
			},
		},
	}
}

func TestBuildGeneralSummary(t *testing.T) {
	now := ts("2024-01-10T12:00:00Z")
	s := BuildGeneralSummary(sampleOrders(), now)

	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 5, s.TotalProducts)
	assert.Equal(t, 2, s.DistinctClients)
	assert.Equal(t, ts("2024-01-08T10:00:00Z"), s.FirstOrderAt)
	assert.Equal(t, ts("2024-01-10T09:00:00Z"), s.LastOrderAt)
}

func TestBuildGeneralSummary_Empty(t *testing.T) {
	now := ts("2024-01-10T12:00:00Z")
	s := BuildGeneralSummary(nil, now)

	assert.Zero(t, s.TotalOrders)
	assert.Zero(t, s.TotalProducts)
	assert.Zero(t, s.DistinctClients)
	assert.Equal(t, now, s.FirstOrderAt)
	assert.Equal(t, now, s.LastOrderAt)
}

func TestBuildSupplierGroups(t *testing.T) {
	groups := BuildSupplierGroups(sampleOrders())
	require.Len(t, groups, 2)

	byID := make(map[id.ID]SupplierGroup, len(groups))
	for _, g := range groups {
		byID[g.SupplierID] = g
	}

	molinos := byID[supplier1]
	require.Len(t, molinos.Products, 1)
	assert.Equal(t, "Molinos SA", molinos.SupplierName)
	assert.Equal(t, "FL-01", molinos.Products[0].Code)
	// 3 from ORD-001 plus 2 from ORD-002.
	assert.True(t, molinos.Products[0].Quantity.Equal(qty(5)))

	lacteos := byID[supplier2]
	require.Len(t, lacteos.Products, 1)
	assert.True(t, lacteos.Products[0].Quantity.Equal(qty(18)))
}

func TestBuildSupplierGroups_SortedByProductID(t *testing.T) {
	list := []orders.Order{{
		ID:        7,
		ClientID:  clientA,
		CreatedAt: ts("2024-01-08T10:00:00Z"),
		Lines: []orders.Line{
			line(productMilk, "MK-01", "Leche", &supplier1, "Molinos SA", 1),
			line(productFlour, "FL-01", "Harina", &supplier1, "Molinos SA", 1),
		},
	}}

	groups := BuildSupplierGroups(list)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Products, 2)
	assert.True(t, groups[0].Products[0].ProductID.String() < groups[0].Products[1].ProductID.String())
}

func TestBuildSupplierGroups_TraversalOrderIndependent(t *testing.T) {
	list := sampleOrders()
	reversed := []orders.Order{list[2], list[1], list[0]}

	assert.Equal(t, BuildSupplierGroups(list), BuildSupplierGroups(reversed))
}

func TestBuildSupplierGroups_Empty(t *testing.T) {
	assert.Empty(t, BuildSupplierGroups(nil))
}

func TestBuildOrderDetails(t *testing.T) {
	details := BuildOrderDetails(sampleOrders())
	require.Len(t, details, 3)

	// Most recent first.
	assert.Equal(t, int64(3), details[0].OrderID)
	assert.Equal(t, int64(2), details[1].OrderID)
	assert.Equal(t, int64(1), details[2].OrderID)

	assert.Equal(t, "Bar Paco", details[0].ClientName)
	require.Len(t, details[2].Items, 2)
	assert.Equal(t, "Harina 25kg", details[2].Items[0].Description)
	assert.True(t, details[2].Items[0].Quantity.Equal(qty(3)))
}

func TestBuildOrderDetails_Empty(t *testing.T) {
	assert.Empty(t, BuildOrderDetails(nil))
}

func TestTotalQuantity(t *testing.T) {
	groups := BuildSupplierGroups(sampleOrders())
	// 5 flour + 18 milk; the supplier-less soap line is excluded.
	assert.True(t, TotalQuantity(groups).Equal(qty(23)))
}

package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"almacen/internal/core/id"
	"almacen/internal/domain/orders"
)

// The three aggregators are pure: identical input sets produce identical
// output regardless of traversal order. All explicit orderings are part
// of the report contract.

// BuildGeneralSummary folds orders into the general view. On empty input
// both timestamps fall back to now; it never fails.
func BuildGeneralSummary(list []orders.Order, now time.Time) GeneralSummary {
	if len(list) == 0 {
		return GeneralSummary{FirstOrderAt: now, LastOrderAt: now}
	}

	summary := GeneralSummary{
		TotalOrders:  len(list),
		FirstOrderAt: list[0].CreatedAt,
		LastOrderAt:  list[0].CreatedAt,
	}

	clients := make(map[id.ID]struct{}, len(list))
	for _, o := range list {
		summary.TotalProducts += len(o.Lines)
		clients[o.ClientID] = struct{}{}

		if o.CreatedAt.Before(summary.FirstOrderAt) {
			summary.FirstOrderAt = o.CreatedAt
		}
		if o.CreatedAt.After(summary.LastOrderAt) {
			summary.LastOrderAt = o.CreatedAt
		}
	}
	summary.DistinctClients = len(clients)

	return summary
}

// BuildSupplierGroups groups line items by the supplier of their product
// and sums quantities per product across all orders. Lines whose product
// has no resolvable supplier are skipped. Groups are sorted by supplier
// id ascending, products within a group by product id ascending.
func BuildSupplierGroups(list []orders.Order) []SupplierGroup {
	type productKey struct {
		supplier id.ID
		product  id.ID
	}

	names := make(map[id.ID]string)
	totals := make(map[productKey]*ProductTotal)

	for _, o := range list {
		for _, line := range o.Lines {
			if line.SupplierID == nil {
				continue
			}
			supplierID := *line.SupplierID
			names[supplierID] = line.SupplierName

			key := productKey{supplier: supplierID, product: line.ProductID}
			if total, ok := totals[key]; ok {
				total.Quantity = total.Quantity.Add(line.Quantity)
				continue
			}
			totals[key] = &ProductTotal{
				ProductID:   line.ProductID,
				Code:        line.ProductCode,
				Description: line.Description,
				Unit:        line.Unit,
				Quantity:    line.Quantity,
			}
		}
	}

	grouped := make(map[id.ID][]ProductTotal, len(names))
	for key, total := range totals {
		grouped[key.supplier] = append(grouped[key.supplier], *total)
	}

	groups := make([]SupplierGroup, 0, len(grouped))
	for supplierID, products := range grouped {
		sort.Slice(products, func(i, j int) bool {
			return products[i].ProductID.String() < products[j].ProductID.String()
		})
		groups = append(groups, SupplierGroup{
			SupplierID:   supplierID,
			SupplierName: names[supplierID],
			Products:     products,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].SupplierID.String() < groups[j].SupplierID.String()
	})

	return groups
}

// BuildOrderDetails flattens each order into a report-friendly projection,
// most recent order first.
func BuildOrderDetails(list []orders.Order) []OrderDetail {
	details := make([]OrderDetail, 0, len(list))
	for _, o := range list {
		items := make([]DetailItem, 0, len(o.Lines))
		for _, line := range o.Lines {
			items = append(items, DetailItem{
				Description: line.Description,
				Quantity:    line.Quantity,
			})
		}
		details = append(details, OrderDetail{
			OrderID:    o.ID,
			Number:     o.Number,
			CreatedAt:  o.CreatedAt,
			ClientName: o.ClientName,
			Items:      items,
		})
	}

	sort.Slice(details, func(i, j int) bool {
		if details[i].CreatedAt.Equal(details[j].CreatedAt) {
			return details[i].OrderID > details[j].OrderID
		}
		return details[i].CreatedAt.After(details[j].CreatedAt)
	})

	return details
}

// TotalQuantity sums the quantities of every product across all groups.
func TotalQuantity(groups []SupplierGroup) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		for _, p := range g.Products {
			total = total.Add(p.Quantity)
		}
	}
	return total
}

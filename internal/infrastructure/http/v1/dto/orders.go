package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/domain/orders"
)

// OrderLineRequest is one order position.
type OrderLineRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateOrderRequest is the request body for creating an order.
type CreateOrderRequest struct {
	// Number is optional; left empty, the server assigns one.
	Number string `json:"number"`

	ClientID string `json:"clientId" binding:"required"`

	// CreatedAt is optional and defaults to now. Accepting it makes data
	// loads and migrations possible.
	CreatedAt *time.Time `json:"createdAt"`

	Lines []OrderLineRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity converts the DTO to a domain order.
func (r *CreateOrderRequest) ToEntity() (*orders.Order, error) {
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return nil, apperror.NewValidation("invalid clientId").
			WithDetail("clientId", r.ClientID)
	}

	order := &orders.Order{
		Number:   r.Number,
		ClientID: clientID,
	}
	if r.CreatedAt != nil {
		order.CreatedAt = r.CreatedAt.UTC()
	}

	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid productId").
				WithDetail("index", i).
				WithDetail("productId", line.ProductID)
		}
		order.Lines = append(order.Lines, orders.Line{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}
	return order, nil
}

// OrderListQuery contains order list parameters.
type OrderListQuery struct {
	From   *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To     *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit  int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int        `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the query to a repository filter.
func (q *OrderListQuery) ToFilter() orders.ListFilter {
	return orders.ListFilter{
		FromDate: q.From,
		ToDate:   q.To,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
}

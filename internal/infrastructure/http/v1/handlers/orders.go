package handlers

import (
	"github.com/gin-gonic/gin"

	"almacen/internal/domain/orders"
	"almacen/internal/infrastructure/http/v1/dto"
)

// OrderHandler serves customer orders.
type OrderHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *orders.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: base, service: service}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), order); err != nil {
		h.Error(c, err)
		return
	}

	// Re-read so the response carries denormalized names.
	created, err := h.service.GetByID(c.Request.Context(), order.ID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(201, created)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, order)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.OrderListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	list, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: list, Count: len(list)})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"almacen/internal/domain/catalogs/client"
	"almacen/internal/domain/catalogs/product"
	"almacen/internal/domain/catalogs/supplier"
	"almacen/internal/infrastructure/http/v1/dto"
)

// --- Suppliers ---

// SupplierHandler serves the supplier catalog.
type SupplierHandler struct {
	*BaseHandler
	service *supplier.Service
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHandler {
	return &SupplierHandler{BaseHandler: base, service: service}
}

// Create handles POST /catalog/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entity.ID.String())
}

// Get handles GET /catalog/suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	supplierID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entity)
}

// List handles GET /catalog/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Defaults()

	items, err := h.service.List(c.Request.Context(), q.Search, q.Limit, q.Offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, Count: len(items)})
}

// Update handles PUT /catalog/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	supplierID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(entity)
	if err := h.service.Update(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entity)
}

// --- Clients ---

// ClientHandler serves the client catalog.
type ClientHandler struct {
	*BaseHandler
	service *client.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHandler {
	return &ClientHandler{BaseHandler: base, service: service}
}

// Create handles POST /catalog/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entity.ID.String())
}

// Get handles GET /catalog/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entity)
}

// List handles GET /catalog/clients
func (h *ClientHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Defaults()

	items, err := h.service.List(c.Request.Context(), q.Search, q.Limit, q.Offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, Count: len(items)})
}

// Update handles PUT /catalog/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(entity)
	if err := h.service.Update(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entity)
}

// --- Products ---

// ProductHandler serves the product catalog.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// Create handles POST /catalog/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entity.ID.String())
}

// Get handles GET /catalog/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entity)
}

// List handles GET /catalog/products
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Defaults()

	items, err := h.service.List(c.Request.Context(), q.Search, q.Limit, q.Offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, Count: len(items)})
}

// Update handles PUT /catalog/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(entity); err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.Update(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entity)
}

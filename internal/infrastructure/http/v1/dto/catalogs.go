package dto

import (
	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/client"
	"almacen/internal/domain/catalogs/product"
	"almacen/internal/domain/catalogs/supplier"
)

// --- Suppliers ---

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	ContactEmail *string `json:"contactEmail"`
	Phone        *string `json:"phone"`
}

// ToEntity converts the DTO to a domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.NewSupplier(r.Code, r.Name)
	s.ContactEmail = r.ContactEmail
	s.Phone = r.Phone
	return s
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Name         string  `json:"name" binding:"required"`
	ContactEmail *string `json:"contactEmail"`
	Phone        *string `json:"phone"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	s.Name = r.Name
	s.ContactEmail = r.ContactEmail
	s.Phone = r.Phone
}

// --- Clients ---

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	Code    string  `json:"code" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ToEntity converts the DTO to a domain entity.
func (r *CreateClientRequest) ToEntity() *client.Client {
	c := client.NewClient(r.Code, r.Name)
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	return c
}

// UpdateClientRequest is the request body for updating a client.
type UpdateClientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateClientRequest) ApplyTo(c *client.Client) {
	c.Name = r.Name
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
}

// --- Products ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code       string  `json:"code" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
	SupplierID *string `json:"supplierId"`
}

// ToEntity converts the DTO to a domain entity.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	p := product.NewProduct(r.Code, r.Name, r.Unit)
	if r.SupplierID != nil && *r.SupplierID != "" {
		supplierID, err := id.Parse(*r.SupplierID)
		if err != nil {
			return nil, apperror.NewValidation("invalid supplierId").
				WithDetail("supplierId", *r.SupplierID)
		}
		p.SupplierID = &supplierID
	}
	return p, nil
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Name       string  `json:"name" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
	SupplierID *string `json:"supplierId"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) error {
	p.Name = r.Name
	p.Unit = r.Unit
	p.SupplierID = nil
	if r.SupplierID != nil && *r.SupplierID != "" {
		supplierID, err := id.Parse(*r.SupplierID)
		if err != nil {
			return apperror.NewValidation("invalid supplierId").
				WithDetail("supplierId", *r.SupplierID)
		}
		p.SupplierID = &supplierID
	}
	return nil
}

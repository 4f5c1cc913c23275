// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates the JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers the error on the Gin context and aborts the request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseID parses a UUID path parameter.
func (h *BaseHandler) ParseID(c *gin.Context, param string) (id.ID, bool) {
	raw := c.Param(param)
	parsed, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail(param, raw))
		return id.Nil(), false
	}
	return parsed, true
}

// ParseInt64Param parses an integer path parameter.
func (h *BaseHandler) ParseInt64Param(c *gin.Context, param string) (int64, bool) {
	raw := c.Param(param)
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail(param, raw))
		return 0, false
	}
	return parsed, true
}

// Created sends a 201 response with the created id.
func (h *BaseHandler) Created(c *gin.Context, id string) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// OK sends a 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Success sends a success response without data.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: message})
}

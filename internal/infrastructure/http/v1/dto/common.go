// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"almacen/internal/core/id"
)

// ListQuery contains common list parameters.
type ListQuery struct {
	Search string `form:"search"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// Defaults applies default pagination values.
func (q *ListQuery) Defaults() {
	if q.Limit == 0 {
		q.Limit = 50
	}
}

// ListResponse wraps list results.
type ListResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates an ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse documents the error body shape produced by the error
// handler middleware.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

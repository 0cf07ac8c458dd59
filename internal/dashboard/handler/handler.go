package handler

import (
	"net/http"

	"transit_console_backend/internal/dashboard/service"
	"transit_console_backend/internal/dashboard/transport"
	"transit_console_backend/platform/httpkit"
	"transit_console_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for dashboard statistics.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new dashboard handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Revenue aggregates posted revenue entries per company.
// POST /api/v1/dashboard/revenue
func (h *Handler) Revenue(c *gin.Context) {
	var req transport.RevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.Revenue(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

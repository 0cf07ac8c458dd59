package handler

import (
	"net/http"

	"transit_console_backend/internal/companies/service"
	"transit_console_backend/internal/companies/transport"
	"transit_console_backend/platform/httpkit"
	"transit_console_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for company forms.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new companies handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Validate checks a company create/edit payload and returns the normalised draft.
// POST /api/v1/companies/validate
func (h *Handler) Validate(c *gin.Context) {
	var req transport.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	draft, err := h.svc.Prepare(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, draft)
}

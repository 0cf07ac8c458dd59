package maps

import (
	"net/http"

	"transit_console_backend/platform/httpkit"
	"transit_console_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler exposes the maps search endpoint.
type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// LookupAddress handles GET /api/v1/maps/address-lookup?q=...
func (h *Handler) LookupAddress(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", validator.FieldErrors(err))
		return
	}

	results, err := h.svc.SearchAddress(c.Request.Context(), req.Query, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, results)
}

package exports

import (
	"net/http"

	"transit_console_backend/platform/httpkit"
	"transit_console_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request body"
	msgValidationFailed = "validation failed"
)

// Handler handles export requests.
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates a new export handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ExportBusStops handles POST /api/v1/exports/bus-stops?format=csv|pdf
func (h *Handler) ExportBusStops(c *gin.Context) {
	format, ok := h.bindFormat(c)
	if !ok {
		return
	}

	var req BusStopExportRequest
	if !h.bindJSON(c, &req) {
		return
	}

	file, err := h.svc.ExportBusStops(c.Request.Context(), format, req)
	if httpkit.HandleError(c, err) {
		return
	}
	writeFile(c, file)
}

// ExportTable handles POST /api/v1/exports/table?format=csv|pdf
func (h *Handler) ExportTable(c *gin.Context) {
	format, ok := h.bindFormat(c)
	if !ok {
		return
	}

	var req TableExportRequest
	if !h.bindJSON(c, &req) {
		return
	}

	file, err := h.svc.ExportTable(c.Request.Context(), format, req)
	if httpkit.HandleError(c, err) {
		return
	}
	writeFile(c, file)
}

func (h *Handler) bindFormat(c *gin.Context) (string, bool) {
	var query ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return "", false
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return "", false
	}
	return query.Format, true
}

func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}

func writeFile(c *gin.Context, file File) {
	c.Header("ETag", `"`+checksum(file.Data)+`"`)
	httpkit.Attachment(c, file.Filename, file.ContentType, file.Data)
}

package handler

import (
	"net/http"

	"transit_console_backend/internal/busstops/service"
	"transit_console_backend/internal/busstops/transport"
	"transit_console_backend/platform/httpkit"
	"transit_console_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for coordinates and bus stops.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new bus stop handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the coordinate and bus stop routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	coords := rg.Group("/coordinates")
	coords.POST("/to-dms", h.ToDMS)
	coords.POST("/to-decimal", h.ToDecimal)
	coords.GET("/validate", h.ValidateCoordinate)

	stops := rg.Group("/bus-stops")
	stops.POST("/validate", h.Validate)
	stops.POST("/describe", h.Describe)
	stops.POST("/location-form", h.LocationForm)
	stops.GET("/qr", h.QRCode)
}

// ToDMS converts decimal degrees to DMS text.
// POST /api/v1/coordinates/to-dms
func (h *Handler) ToDMS(c *gin.Context) {
	var req transport.ToDMSRequest
	if !h.bindJSON(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.ToDMS(req))
}

// ToDecimal converts DMS text to decimal degrees.
// POST /api/v1/coordinates/to-decimal
func (h *Handler) ToDecimal(c *gin.Context) {
	var req transport.ToDecimalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.ToDecimal(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ValidateCoordinate checks decimal or DMS text.
// GET /api/v1/coordinates/validate?value=&axis=
func (h *Handler) ValidateCoordinate(c *gin.Context) {
	var req transport.ValidateCoordinateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}
	httpkit.OK(c, h.svc.ValidateCoordinate(req))
}

// Validate checks a bus stop create/edit payload and returns the normalised draft.
// POST /api/v1/bus-stops/validate
func (h *Handler) Validate(c *gin.Context) {
	var req transport.BusStopRequest
	if !h.bindJSON(c, &req) {
		return
	}

	draft, err := h.svc.PrepareBusStop(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, draft)
}

// Describe renders coordinates returned by the stops API for a detail view.
// POST /api/v1/bus-stops/describe
func (h *Handler) Describe(c *gin.Context) {
	var req transport.DescribeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.Describe(req))
}

// LocationForm applies one edit to a location form state.
// POST /api/v1/bus-stops/location-form
func (h *Handler) LocationForm(c *gin.Context) {
	var req transport.LocationFormRequest
	if !h.bindJSON(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.ApplyFormAction(req))
}

// QRCode returns a PNG QR code of the stop location.
// GET /api/v1/bus-stops/qr?lat=&lng=&size=
func (h *Handler) QRCode(c *gin.Context) {
	var req transport.QRRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	png, filename, err := h.svc.QRCode(req)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "image/png", png)
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

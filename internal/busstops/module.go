// Package busstops provides the bus stop location bounded context module:
// coordinate conversion, stop form validation and QR codes.
package busstops

import (
	"transit_console_backend/internal/busstops/handler"
	"transit_console_backend/internal/busstops/service"
	apphttp "transit_console_backend/internal/http"
	"transit_console_backend/platform/validator"
)

// Module is the bus stops bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the bus stops module.
func NewModule(val *validator.Validator) *Module {
	svc := service.New()
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "busstops"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts bus stop routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)

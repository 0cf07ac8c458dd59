// Package companies provides the bus company form module.
package companies

import (
	"transit_console_backend/internal/companies/handler"
	"transit_console_backend/internal/companies/service"
	apphttp "transit_console_backend/internal/http"
	"transit_console_backend/platform/config"
	"transit_console_backend/platform/validator"
)

// Module is the companies module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the companies module.
func NewModule(cfg config.PhoneConfig, val *validator.Validator) *Module {
	svc := service.New(cfg.GetPhoneDefaultRegion())
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "companies"
}

// RegisterRoutes mounts company routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/companies")
	group.POST("/validate", m.handler.Validate)
}

var _ apphttp.Module = (*Module)(nil)

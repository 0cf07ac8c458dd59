// Package dashboard provides the dashboard statistics module.
package dashboard

import (
	"transit_console_backend/internal/dashboard/handler"
	"transit_console_backend/internal/dashboard/service"
	apphttp "transit_console_backend/internal/http"
	"transit_console_backend/platform/config"
	"transit_console_backend/platform/validator"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the dashboard module.
func NewModule(cfg config.DashboardConfig, val *validator.Validator) *Module {
	svc := service.New(cfg.GetDashboardCurrency())
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts dashboard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/dashboard")
	group.POST("/revenue", m.handler.Revenue)
}

var _ apphttp.Module = (*Module)(nil)

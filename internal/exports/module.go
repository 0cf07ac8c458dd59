package exports

import (
	apphttp "transit_console_backend/internal/http"
	"transit_console_backend/platform/config"
	"transit_console_backend/platform/logger"
	"transit_console_backend/platform/validator"
)

// Module is the exports bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the exports module.
// converter may be nil, in which case PDF exports answer 503.
func NewModule(converter TableConverter, cfg config.ExportConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(converter, cfg.GetExportMaxRows(), log)
	handler := NewHandler(svc, val)

	return &Module{
		handler: handler,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "exports"
}

// Service returns the service layer for external use.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts export routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/exports")
	group.POST("/bus-stops", m.handler.ExportBusStops)
	group.POST("/table", m.handler.ExportTable)
}

var _ apphttp.Module = (*Module)(nil)

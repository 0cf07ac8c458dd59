package maps

import (
	apphttp "transit_console_backend/internal/http"
	"transit_console_backend/platform/config"
	"transit_console_backend/platform/logger"
	"transit_console_backend/platform/validator"
)

// Module wires the maps address lookup HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.GeocoderConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(cfg, log)
	h := NewHandler(svc, val)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "maps"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/maps")
	group.GET("/address-lookup", m.handler.LookupAddress)
}

var _ apphttp.Module = (*Module)(nil)

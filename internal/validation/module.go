package validation

import (
	"phonechecker/internal/events"
	apphttp "phonechecker/internal/http"
	"phonechecker/platform/config"
	"phonechecker/platform/logger"
)

// ModuleConfig combines the settings the check endpoints need.
type ModuleConfig interface {
	config.ValidatorConfig
	config.QuotaConfig
}

// Module wires the phone check HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(cfg ModuleConfig, quota Quota, publisher events.Publisher, log *logger.Logger) *Module {
	svc := NewService(log)
	h := NewHandler(svc, quota, publisher, cfg.GetDefaultRegion(), cfg.GetBulkMaxNumbers(), log)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "validation"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/phone")
	group.GET("/regions", m.handler.Regions)

	limited := group.Group("")
	if ctx.RateLimiter != nil {
		limited.Use(ctx.RateLimiter.RateLimit())
	}
	limited.POST("/check", m.handler.Check)
	limited.POST("/bulk-check", m.handler.BulkCheck)
}

var _ apphttp.Module = (*Module)(nil)

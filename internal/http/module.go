package http

import (
	"phonechecker/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is a feature package that mounts its own routes.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext is what the router hands to each Module.
type RouterContext struct {
	Engine *gin.Engine
	// V1 is mounted at /api/v1.
	V1 *gin.RouterGroup
	// RateLimiter is nil when per-IP limiting is disabled.
	RateLimiter *httpkit.IPRateLimiter
}

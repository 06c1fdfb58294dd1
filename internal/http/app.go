// Package http holds the pieces shared by the API router and the modules it mounts.
package http

import (
	"phonechecker/platform/config"
	"phonechecker/platform/logger"
)

// App is assembled in cmd/api and consumed by router.New.
type App struct {
	Config  config.HTTPConfig
	Logger  *logger.Logger
	Modules []Module
}

package app

import (
	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/core/ports"
)

// Components contains the initialized application components handed to the
// CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Watcher  ports.Watcher
	Settings config.Settings
}

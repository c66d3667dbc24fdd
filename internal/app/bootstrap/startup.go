// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/casehub/internal/app/resources"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the seed is loaded
// and checked, but before the HTTP handler is built. It registers the
// shared templates, applies the configured timeouts, starts the hub and,
// when configured, the seed watcher.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{
		Short:  appCfg.ReadTimeout,
		Medium: appCfg.WriteTimeout,
		Upload: appCfg.UploadTimeout,
	})

	deps.Hub.Start()

	if deps.Watcher != nil {
		if err := deps.Watcher.Start(); err != nil {
			// Hot reload is a convenience; serve the loaded seed without it.
			logger.Warn("seed watcher not started", zap.Error(err))
		}
	}
	return nil
}

// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops the seed watcher, the write limiter and then the hub. Commands already
// accepted by the hub finish first.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Watcher != nil {
		logger.Info("stopping seed watcher")
		deps.Watcher.Stop()
	}
	if deps.Writes != nil {
		deps.Writes.Stop()
	}
	if deps.Hub != nil {
		logger.Info("stopping state hub")
		deps.Hub.Stop()
	}
	return nil
}

// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/casehub/internal/app/resources/seed"
	"github.com/dalemusser/casehub/internal/app/store/audit"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/ratelimit"
	"github.com/dalemusser/casehub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB loads the seed and builds the state hub around it. The hub is
// not started here; Startup does that once the schema check has run.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	source := appCfg.SeedPath
	if source == "" {
		source = "embedded"
	}

	s, err := seed.Load(appCfg.SeedPath, time.Now())
	if err != nil {
		logger.Error("seed load failed", zap.String("source", source), zap.Error(err))
		return DBDeps{}, fmt.Errorf("load seed: %w", err)
	}
	logger.Info("seed loaded",
		zap.String("source", source),
		zap.Int("cases", len(s.Cases)),
		zap.Int("contributors", len(s.Contributors)),
		zap.Int("categories", len(s.Catalog.Categories)))

	st := hub.NewState(s.Catalog, s.Contributors, s.Cases, appCfg.RecentLimit)
	deps := DBDeps{
		Seed:  s,
		Hub:   hub.New(st, logger.Named("hub")),
		Audit: audit.New(appCfg.AuditCapacity),
	}
	if appCfg.WriteRateLimit > 0 {
		deps.Writes = ratelimit.New(appCfg.WriteRateLimit, time.Minute)
	}

	if appCfg.WatchSeed && appCfg.SeedPath != "" {
		deps.Watcher = workers.NewSeedWatcher(appCfg.SeedPath, deps.Hub, logger.Named("seedwatch"), 0)
	}
	return deps, nil
}

// EnsureSchema checks the referential integrity of the loaded seed. Dangling
// references are logged as warnings; the app still starts with whatever
// resolved.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	probs := seed.Validate(deps.Seed)
	for _, p := range probs {
		logger.Warn("seed integrity",
			zap.String("kind", p.Kind),
			zap.String("id", p.ID),
			zap.String("problem", p.Msg))
	}
	if len(probs) > 0 {
		logger.Warn("seed has integrity problems", zap.Int("count", len(probs)))
	}
	return nil
}

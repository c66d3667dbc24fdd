// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/casehub/internal/app/resources/seed"
	"github.com/dalemusser/casehub/internal/app/store/audit"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/ratelimit"
	"github.com/dalemusser/casehub/internal/app/system/workers"
)

// DBDeps holds the back-end dependencies for the app. CaseHub keeps all
// state in memory, so the "database" is the state hub loaded from the seed.
type DBDeps struct {
	// Seed is the data the hub was built from. EnsureSchema checks it.
	Seed seed.Seed

	// Hub owns the application state.
	Hub *hub.Hub

	// Watcher reloads the seed file on change. Nil unless watch_seed is
	// set and seed_path points at a file.
	Watcher *workers.SeedWatcher

	// Audit holds the in-memory activity log.
	Audit *audit.Store

	// Writes limits POSTs per client IP. Nil when write_rate_limit is 0.
	Writes *ratelimit.Limiter
}

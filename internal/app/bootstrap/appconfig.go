// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; ports, TLS, logging and
// request timeouts live in WAFFLE's CoreConfig.
type AppConfig struct {
	// Seed data
	SeedPath  string // YAML seed file; blank uses the embedded seed
	WatchSeed bool   // reload the hub when SeedPath changes on disk

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: casehub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// The single viewer identity. There is no login; the persona switcher
	// only changes the role.
	ViewerName       string
	ViewerAvatar     string
	ViewerDivision   string
	ViewerDepartment string
	ViewerSection    string
	ViewerRole       string // starting persona: contributor, manager or director

	// Recently viewed list length
	RecentLimit int

	// Attachment limits
	UploadMaxFiles  int // files per case
	UploadMaxSizeMB int // per file

	// Hub command timeouts (zero keeps the defaults)
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	UploadTimeout time.Duration

	// Activity log: "all", "store", "log" or "off" per category
	AuditLogCases   string
	AuditLogReviews string
	AuditCapacity   int // events kept in memory

	// Writes allowed per client IP per minute; 0 disables the limit
	WriteRateLimit int

	// Prometheus endpoint
	MetricsEnabled bool
	MetricsPath    string
}

// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/casehub/internal/app/store/audit"
	"github.com/dalemusser/casehub/internal/app/system/auditlog"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/limits"
	"github.com/dalemusser/casehub/internal/app/system/social"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// defaultSessionKey is only acceptable outside prod.
const defaultSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for CaseHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: seed_path, session_name, etc.
//   - Environment variables: CASEHUB_SEED_PATH, CASEHUB_SESSION_NAME, etc.
//   - Command-line flags: --seed_path, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "seed_path", Default: "", Desc: "YAML seed file (blank uses the embedded seed)"},
	{Name: "watch_seed", Default: false, Desc: "Reload the seed file when it changes"},

	{Name: "session_key", Default: defaultSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "casehub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Viewer identity
	{Name: "viewer_name", Default: "Current User", Desc: "Name written on new cases and comments"},
	{Name: "viewer_avatar", Default: "", Desc: "Avatar URL of the viewer"},
	{Name: "viewer_division", Default: "it", Desc: "Default division for new cases"},
	{Name: "viewer_department", Default: "it-dept", Desc: "Default department for new cases"},
	{Name: "viewer_section", Default: "it-section", Desc: "Default section for new cases"},
	{Name: "viewer_role", Default: "contributor", Desc: "Starting persona: contributor, manager or director"},

	{Name: "recent_limit", Default: social.DefaultRecentLimit, Desc: "Length of the recently viewed list"},

	// Attachments
	{Name: "upload_max_files", Default: limits.DefaultMaxFiles, Desc: "Attachments allowed per case"},
	{Name: "upload_max_size_mb", Default: limits.DefaultMaxSizeMB, Desc: "Largest attachment in MB"},

	// Hub timeouts
	{Name: "read_timeout", Default: timeouts.DefaultShort.String(), Desc: "Timeout for state reads (e.g., 5s)"},
	{Name: "write_timeout", Default: timeouts.DefaultMedium.String(), Desc: "Timeout for state writes"},
	{Name: "upload_timeout", Default: timeouts.DefaultUpload.String(), Desc: "Timeout for reading uploaded files"},

	// Activity log
	{Name: "audit_log_cases", Default: "all", Desc: "Case edit events: all, store, log or off"},
	{Name: "audit_log_reviews", Default: "all", Desc: "Review decision events: all, store, log or off"},
	{Name: "audit_capacity", Default: audit.DefaultCapacity, Desc: "Activity events kept in memory"},

	{Name: "write_rate_limit", Default: 120, Desc: "Writes per client IP per minute (0 disables)"},

	// Metrics
	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics"},
	{Name: "metrics_path", Default: "/metrics", Desc: "Path of the Prometheus endpoint"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CASEHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CASEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SeedPath:  appValues.String("seed_path"),
		WatchSeed: appValues.Bool("watch_seed"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		ViewerName:       appValues.String("viewer_name"),
		ViewerAvatar:     appValues.String("viewer_avatar"),
		ViewerDivision:   appValues.String("viewer_division"),
		ViewerDepartment: appValues.String("viewer_department"),
		ViewerSection:    appValues.String("viewer_section"),
		ViewerRole:       appValues.String("viewer_role"),

		RecentLimit: appValues.Int("recent_limit"),

		UploadMaxFiles:  appValues.Int("upload_max_files"),
		UploadMaxSizeMB: appValues.Int("upload_max_size_mb"),

		ReadTimeout:   appValues.Duration("read_timeout", timeouts.DefaultShort),
		WriteTimeout:  appValues.Duration("write_timeout", timeouts.DefaultMedium),
		UploadTimeout: appValues.Duration("upload_timeout", timeouts.DefaultUpload),

		AuditLogCases:   appValues.String("audit_log_cases"),
		AuditLogReviews: appValues.String("audit_log_reviews"),
		AuditCapacity:   appValues.Int("audit_capacity"),

		WriteRateLimit: appValues.Int("write_rate_limit"),

		MetricsEnabled: appValues.Bool("metrics_enabled"),
		MetricsPath:    appValues.String("metrics_path"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.UploadMaxFiles <= 0 {
		return fmt.Errorf("upload_max_files must be positive, got %d", appCfg.UploadMaxFiles)
	}
	if appCfg.UploadMaxSizeMB <= 0 {
		return fmt.Errorf("upload_max_size_mb must be positive, got %d", appCfg.UploadMaxSizeMB)
	}
	if appCfg.RecentLimit <= 0 {
		return fmt.Errorf("recent_limit must be positive, got %d", appCfg.RecentLimit)
	}
	if _, ok := auth.ParseRole(appCfg.ViewerRole); !ok {
		return fmt.Errorf("viewer_role %q is not contributor, manager or director", appCfg.ViewerRole)
	}
	if appCfg.ViewerName == "" {
		return fmt.Errorf("viewer_name is required")
	}

	for name, v := range map[string]string{
		"audit_log_cases":   appCfg.AuditLogCases,
		"audit_log_reviews": appCfg.AuditLogReviews,
	} {
		switch v {
		case "", "all", "store", "log", "off":
		default:
			return fmt.Errorf("%s must be all, store, log or off, got %q", name, v)
		}
	}
	if appCfg.AuditCapacity <= 0 {
		return fmt.Errorf("audit_capacity must be positive, got %d", appCfg.AuditCapacity)
	}
	if appCfg.WriteRateLimit < 0 {
		return fmt.Errorf("write_rate_limit must not be negative, got %d", appCfg.WriteRateLimit)
	}

	if coreCfg.Env == "prod" {
		if appCfg.SessionKey == defaultSessionKey || len(appCfg.SessionKey) < 32 {
			return fmt.Errorf("session_key must be set to 32+ random characters in prod")
		}
	}

	if appCfg.SeedPath != "" {
		if _, err := os.Stat(appCfg.SeedPath); err != nil {
			logger.Error("seed file not readable", zap.String("path", appCfg.SeedPath), zap.Error(err))
			return fmt.Errorf("seed_path: %w", err)
		}
	} else if appCfg.WatchSeed {
		logger.Warn("watch_seed is set but seed_path is blank; nothing to watch")
	}

	for name, d := range map[string]time.Duration{
		"read_timeout":   appCfg.ReadTimeout,
		"write_timeout":  appCfg.WriteTimeout,
		"upload_timeout": appCfg.UploadTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	return nil
}

// viewer builds the fixed viewer identity from config.
func (c AppConfig) viewer() auth.Viewer {
	role, _ := auth.ParseRole(c.ViewerRole)
	return auth.Viewer{
		Name:         c.ViewerName,
		Avatar:       c.ViewerAvatar,
		DivisionID:   c.ViewerDivision,
		DepartmentID: c.ViewerDepartment,
		SectionID:    c.ViewerSection,
		Role:         role,
	}
}

// auditConfig maps the activity log settings onto the audit logger.
func (c AppConfig) auditConfig() auditlog.Config {
	return auditlog.Config{Cases: c.AuditLogCases, Reviews: c.AuditLogReviews}
}

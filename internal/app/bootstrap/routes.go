// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	approvalsfeature "github.com/dalemusser/casehub/internal/app/features/approvals"
	auditlogfeature "github.com/dalemusser/casehub/internal/app/features/auditlog"
	casesfeature "github.com/dalemusser/casehub/internal/app/features/cases"
	catalogfeature "github.com/dalemusser/casehub/internal/app/features/catalog"
	contributorsfeature "github.com/dalemusser/casehub/internal/app/features/contributors"
	dashboardfeature "github.com/dalemusser/casehub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/casehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/casehub/internal/app/features/health"
	homefeature "github.com/dalemusser/casehub/internal/app/features/home"
	keyboardfeature "github.com/dalemusser/casehub/internal/app/features/keyboard"
	personafeature "github.com/dalemusser/casehub/internal/app/features/persona"
	"github.com/dalemusser/casehub/internal/app/system/attachments"
	"github.com/dalemusser/casehub/internal/app/system/auditlog"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/authz"
	"github.com/dalemusser/casehub/internal/app/system/metrics"
	"github.com/dalemusser/casehub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, seed loading, the integrity check
// and Startup have completed. It boots the template engine, applies the
// session middleware and mounts every feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, appCfg.viewer(), logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	limits := attachments.NewLimits(appCfg.UploadMaxFiles, appCfg.UploadMaxSizeMB)
	auditLogger := auditlog.New(deps.Audit, logger.Named("audit"), appCfg.auditConfig())

	r := chi.NewRouter()

	if appCfg.MetricsEnabled {
		r.Use(metrics.Middleware)
		r.Handle(appCfg.MetricsPath, metrics.Handler())
	}

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Hub, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Everything below sees the viewer and pending notices.
	r.Group(func(r chi.Router) {
		r.Use(sessionMgr.LoadViewer)
		r.Use(ratelimit.Writes(deps.Writes, logger))

		errorsHandler := errorsfeature.NewHandler()
		r.Get(authz.ForbiddenPath, errorsHandler.Forbidden)
		r.NotFound(errorsHandler.NotFound)

		// Feed, list and clear-filters
		homeHandler := homefeature.NewHandler(deps.Hub, sessionMgr, errLog, logger)
		r.Mount("/", homefeature.Routes(homeHandler))

		// Editor, case page, social actions and attachment downloads
		casesHandler := casesfeature.NewHandler(deps.Hub, sessionMgr, limits, errLog, logger)
		casesHandler.Audit = auditLogger
		r.Mount("/cases", casesfeature.Routes(casesHandler))
		r.Mount("/files", casesfeature.FileRoutes(casesHandler))

		// Review queues (gated by persona inside)
		approvalsHandler := approvalsfeature.NewHandler(deps.Hub, sessionMgr, errLog, logger)
		approvalsHandler.Audit = auditLogger
		r.Mount("/approvals", approvalsfeature.Routes(approvalsHandler))

		// Activity log (reviewers only)
		auditHandler := auditlogfeature.NewHandler(deps.Audit, errLog, logger)
		r.Mount("/audit", auditlogfeature.Routes(auditHandler))

		contributorsHandler := contributorsfeature.NewHandler(deps.Hub, sessionMgr, errLog, logger)
		r.Mount("/contributors", contributorsfeature.Routes(contributorsHandler))

		dashboardHandler := dashboardfeature.NewHandler(deps.Hub, errLog, logger)
		r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

		// JSON endpoints used by page scripts
		catalogHandler := catalogfeature.NewHandler(deps.Hub, logger)
		r.Mount("/catalog", catalogfeature.Routes(catalogHandler))

		personaHandler := personafeature.NewHandler(sessionMgr, logger)
		r.Mount("/persona", personafeature.Routes(personaHandler))
		r.Get("/me", personaHandler.ServeViewer)

		keyboardHandler := keyboardfeature.NewHandler(sessionMgr, logger)
		r.Mount("/shortcuts", keyboardfeature.Routes(keyboardHandler))
	})

	return r, nil
}

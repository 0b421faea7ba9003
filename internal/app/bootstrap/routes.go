// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"crypto/sha256"
	"net/http"

	auditlogfeature "github.com/dalemusser/couponadmin/internal/app/features/auditlog"
	bannersfeature "github.com/dalemusser/couponadmin/internal/app/features/banners"
	categoriesfeature "github.com/dalemusser/couponadmin/internal/app/features/categories"
	complaintsfeature "github.com/dalemusser/couponadmin/internal/app/features/complaints"
	couponsfeature "github.com/dalemusser/couponadmin/internal/app/features/coupons"
	coupontypesfeature "github.com/dalemusser/couponadmin/internal/app/features/coupontypes"
	dashboardfeature "github.com/dalemusser/couponadmin/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/couponadmin/internal/app/features/errors"
	healthfeature "github.com/dalemusser/couponadmin/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/couponadmin/internal/app/features/heartbeat"
	loginfeature "github.com/dalemusser/couponadmin/internal/app/features/login"
	logoutfeature "github.com/dalemusser/couponadmin/internal/app/features/logout"
	packagesfeature "github.com/dalemusser/couponadmin/internal/app/features/packages"
	providersfeature "github.com/dalemusser/couponadmin/internal/app/features/providers"
	redeemsfeature "github.com/dalemusser/couponadmin/internal/app/features/redeems"
	reelsfeature "github.com/dalemusser/couponadmin/internal/app/features/reels"
	seasonaleventsfeature "github.com/dalemusser/couponadmin/internal/app/features/seasonalevents"
	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/accounts"
	"github.com/dalemusser/couponadmin/internal/app/store/audit"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/auditlog"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/app/system/authz"
	"github.com/dalemusser/couponadmin/internal/app/system/flash"
	"github.com/dalemusser/couponadmin/internal/app/system/limits"
	"github.com/dalemusser/couponadmin/internal/app/system/listctl"
	"github.com/dalemusser/couponadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/couponadmin/internal/app/system/rolegate"
	"github.com/dalemusser/couponadmin/internal/app/system/tracing"
	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Middleware order matters: tracing wraps
// everything, CSRF runs before any handler reads a form, the session
// loader puts the user in context and the role gate reads it.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	api, err := apiclient.New(appCfg.APIBaseURL, 0, logger)
	if err != nil {
		logger.Error("api client init failed", zap.Error(err))
		return nil, err
	}

	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	accts := accounts.New(api)
	sessionMgr.SetRefresher(accts)

	flashStore, err := flash.New([]byte(appCfg.SessionKey), secure, logger)
	if err != nil {
		logger.Error("flash store init failed", zap.Error(err))
		return nil, err
	}
	viewdata.Init(flashStore)

	// Audit events go to MongoDB when configured. The Sink stays an
	// untyped nil otherwise so the logger falls back to zap.
	var (
		auditStore *audit.Store
		sink       auditlog.Sink
	)
	if deps.MongoDatabase != nil {
		auditStore = audit.New(deps.MongoDatabase)
		sink = auditStore
	}
	auditLog := auditlog.New(sink, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	sessionMgr.OnRefresh(func(r *http.Request, err error) {
		auditLog.SessionRefreshed(r.Context(), r, err)
	})

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	mode, err := rolegate.ParseMatchMode(appCfg.GateMatch)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	background.cancel = cancel
	limiter := ratelimit.NewAttemptLimiter()
	go limiter.Run(ctx)

	stores := remote.NewStores(api, logger)
	crudDeps := crud.Deps{
		Flash:           flashStore,
		Audit:           auditLog,
		Seq:             listctl.NewSequencer(),
		PerPage:         appCfg.PerPage,
		BulkConcurrency: appCfg.BulkDeleteConcurrency,
		Debounce:        appCfg.SearchDebounce,
		Log:             logger,
	}

	errorsHandler := errorsfeature.NewHandler(logger)

	r := chi.NewRouter()
	r.Use(tracing.Middleware)
	r.Use(limits.Body)
	r.Use(csrfMiddleware(appCfg.SessionKey, secure, logger))
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(rolegate.Middleware(rolegate.DefaultTable(mode), logger))
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, api, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// The role gate has already sent anonymous visitors to the login page.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, authz.Home(r), http.StatusSeeOther)
	})
	r.Get("/forbidden", errorsHandler.Forbidden)

	// Authentication
	loginHandler := loginfeature.NewHandler(accts, sessionMgr, limiter, auditLog, flashStore, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
	r.Mount("/auth/logout", logoutfeature.Routes(logoutHandler))

	heartbeatHandler := heartbeatfeature.NewHandler(logger)
	r.Mount("/auth/session", heartbeatfeature.Routes(heartbeatHandler, sessionMgr))

	// Role dashboards
	dashboardHandler := dashboardfeature.NewHandler(stores, logger)
	r.Mount("/admin-dashboard", dashboardfeature.AdminRoutes(dashboardHandler))
	r.Mount("/provider-dashboard", dashboardfeature.ProviderRoutes(dashboardHandler))

	// Entity screens. Packages live under /coupons and must mount first.
	r.Mount("/coupons/packages", packagesfeature.Routes(packagesfeature.NewHandler(stores, crudDeps)))
	r.Mount("/coupons", couponsfeature.Routes(couponsfeature.NewHandler(stores, crudDeps)))
	r.Mount("/coupon-types", coupontypesfeature.Routes(coupontypesfeature.NewHandler(stores, crudDeps)))
	r.Mount("/categories", categoriesfeature.Routes(categoriesfeature.NewHandler(stores, crudDeps)))
	r.Mount("/complaints", complaintsfeature.Routes(complaintsfeature.NewHandler(stores, crudDeps)))
	r.Mount("/providers", providersfeature.Routes(providersfeature.NewHandler(stores, crudDeps)))
	r.Mount("/reels", reelsfeature.Routes(reelsfeature.NewHandler(stores, api.Uploads(), crudDeps)))
	r.Mount("/redeems", redeemsfeature.Routes(redeemsfeature.NewHandler(stores, crudDeps)))
	r.Mount("/banners", bannersfeature.Routes(bannersfeature.NewHandler(stores, crudDeps)))
	r.Mount("/seasonal-events", seasonaleventsfeature.Routes(seasonaleventsfeature.NewHandler(stores, crudDeps)))

	// Audit log (admin)
	auditHandler := auditlogfeature.NewHandler(auditStore, logger)
	r.Mount("/audit-log", auditlogfeature.Routes(auditHandler, sessionMgr))

	return r, nil
}

// csrfMiddleware protects every unsafe request. Forms post the token in
// gorilla.csrf.Token; HTMX sends it in X-CSRF-Token. Outside production
// the site runs over plain HTTP, which csrf must be told about.
func csrfMiddleware(sessionKey string, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + sessionKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.FieldName("gorilla.csrf.Token"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf rejected",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			http.Error(w, "Your session form expired. Reload the page and try again.", http.StatusForbidden)
		})),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

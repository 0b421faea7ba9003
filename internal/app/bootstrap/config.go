// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/auditlog"
	"github.com/dalemusser/couponadmin/internal/app/system/rolegate"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the dashboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_key, etc.
//   - Environment variables: COUPONADMIN_API_BASE_URL, COUPONADMIN_SESSION_KEY, etc.
//   - Command-line flags: --api_base_url, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8000/api", Desc: "Base URL of the coupon REST API"},
	{Name: "api_timeout", Default: "15s", Desc: "Deadline for list fetches and mutations (e.g., 15s, 1m)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Cookie signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Cookie domain (blank means current host)"},

	// Audit store
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI for the audit log (blank disables it)"},
	{Name: "mongo_database", Default: "couponadmin", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 20, Desc: "MongoDB max connection pool size"},
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Presentation
	{Name: "site_name", Default: "Coupon Admin", Desc: "Name shown in the menu header"},
	{Name: "default_image_url", Default: "/static/img/placeholder.png", Desc: "Placeholder for records without an image"},
	{Name: "currency_symbol", Default: "$", Desc: "Symbol prefixed to prices"},
	{Name: "per_page", Default: 10, Desc: "Rows per list page"},
	{Name: "search_debounce", Default: "300ms", Desc: "Delay before a search box refreshes the list"},

	{Name: "gate_match", Default: "prefix", Desc: "Role gate route matching: 'prefix' or 'exact'"},
	{Name: "bulk_delete_concurrency", Default: 4, Desc: "Parallel deletes during a bulk delete"},

	// Tracing
	{Name: "otel_enabled", Default: false, Desc: "Export traces over OTLP/HTTP"},
	{Name: "otel_endpoint", Default: "localhost:4318", Desc: "OTLP/HTTP collector host:port"},
	{Name: "otel_insecure", Default: true, Desc: "Send traces without TLS"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config
// files, COUPONADMIN_* environment variables and flags, merged with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COUPONADMIN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),
		APITimeout: appValues.Duration("api_timeout", 15*time.Second),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),

		MongoURI:         strings.TrimSpace(appValues.String("mongo_uri")),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		AuditLogAuth:     appValues.String("audit_log_auth"),
		AuditLogAdmin:    appValues.String("audit_log_admin"),

		SiteName:        appValues.String("site_name"),
		DefaultImageURL: appValues.String("default_image_url"),
		CurrencySymbol:  appValues.String("currency_symbol"),
		PerPage:         appValues.Int("per_page"),
		SearchDebounce:  appValues.Duration("search_debounce", 300*time.Millisecond),

		GateMatch:             appValues.String("gate_match"),
		BulkDeleteConcurrency: appValues.Int("bulk_delete_concurrency"),

		OTelEnabled:  appValues.Bool("otel_enabled"),
		OTelEndpoint: appValues.String("otel_endpoint"),
		OTelInsecure: appValues.Bool("otel_insecure"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateAPIBaseURL(appCfg.APIBaseURL); err != nil {
		logger.Error("invalid API base URL", zap.String("api_base_url", appCfg.APIBaseURL), zap.Error(err))
		return err
	}
	if strings.TrimSpace(appCfg.SessionKey) == "" {
		return errors.New("session_key must not be empty")
	}
	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return errors.New("session_key must be at least 32 characters in production")
	}
	if _, err := rolegate.ParseMatchMode(appCfg.GateMatch); err != nil {
		return err
	}
	for key, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		if !auditlog.ValidMode(mode) {
			return fmt.Errorf("%s must be all, db, log or off, got %q", key, mode)
		}
	}
	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}
	if appCfg.OTelEnabled && appCfg.OTelEndpoint == "" {
		return errors.New("otel_enabled requires otel_endpoint")
	}
	return nil
}

func validateAPIBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("api_base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url %q must be an absolute http or https URL", s)
	}
	return nil
}

// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// ports, TLS, log level and request limits; everything about the remote
// API, sessions and the audit store lives here.
type AppConfig struct {
	// Remote API
	APIBaseURL string        // e.g. http://localhost:8000/api
	APITimeout time.Duration // deadline for list fetches and single mutations

	// Session management configuration
	SessionKey    string // Secret key for signing cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// MongoDB for the audit log. Blank URI disables it.
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64

	// Audit logging destinations: all, db, log or off
	AuditLogAuth  string
	AuditLogAdmin string

	// Presentation
	SiteName        string
	DefaultImageURL string
	CurrencySymbol  string
	PerPage         int
	SearchDebounce  time.Duration

	// Role gate matching: prefix or exact
	GateMatch string

	// Bulk delete fan-out
	BulkDeleteConcurrency int

	// OpenTelemetry
	OTelEnabled  bool
	OTelEndpoint string
	OTelInsecure bool
}

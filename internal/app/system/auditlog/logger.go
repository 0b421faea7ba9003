// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/couponadmin/internal/app/store/audit"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Destinations for a category.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth covers login, logout, registration and password reset.
	Auth string
	// Admin covers entity create, update and delete.
	Admin string
}

// ValidMode reports whether s is a known destination.
func ValidMode(s string) bool {
	switch s {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Sink persists events. *audit.Store implements it.
type Sink interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger records audit events to a Sink and to zap. A nil sink (no
// database configured) turns "all" and "db" into zap-only.
type Logger struct {
	store  Sink
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. store may be nil.
func New(store Sink, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.ActorRole != "" {
		fields = append(fields, zap.String("actor_role", event.ActorRole))
	}
	if event.Entity != "" {
		fields = append(fields, zap.String("entity", event.Entity), zap.String("entity_id", event.EntityID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration. A nil Logger is a
// no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = ModeAll
	}
	if setting == ModeOff {
		return
	}

	toDB := (setting == ModeAll || setting == ModeDB) && l.store != nil
	toLog := setting == ModeAll || setting == ModeLog || (setting == ModeDB && l.store == nil)

	if toLog {
		l.logToZap(event)
	}
	if toDB {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// requestEvent fills the request-derived fields and the actor from the
// signed-in session, if any.
func requestEvent(r *http.Request, category, eventType string, success bool) audit.Event {
	e := audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   success,
	}
	if u, ok := auth.CurrentUser(r); ok {
		e.Actor = auth.Subject(u.Token)
		e.ActorRole = auth.NormalizeRole(u.Role)
	}
	return e
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, email, role string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginSuccess, true)
	e.Actor, e.ActorRole = email, auth.NormalizeRole(role)
	l.Log(ctx, e)
}

// LoginFailed logs a rejected login; reason is the API's message.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, reason string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginFailed, false)
	e.Actor, e.FailureReason = email, reason
	l.Log(ctx, e)
}

// RateLimited logs an auth attempt blocked before reaching the API.
func (l *Logger) RateLimited(ctx context.Context, r *http.Request, email, flow string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginFailedRateLimit, false)
	e.Actor, e.FailureReason = email, "rate limit exceeded"
	e.Details = map[string]string{"flow": flow}
	l.Log(ctx, e)
}

// Logout logs a sign-out. Call before the session is cleared.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	l.Log(ctx, requestEvent(r, audit.CategoryAuth, audit.EventLogout, true))
}

// Registered logs a new account.
func (l *Logger) Registered(ctx context.Context, r *http.Request, email, role string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventRegistered, true)
	e.Actor, e.ActorRole = email, auth.NormalizeRole(role)
	l.Log(ctx, e)
}

// SessionRefreshed logs a token refresh. err is nil on success.
func (l *Logger) SessionRefreshed(ctx context.Context, r *http.Request, err error) {
	if err == nil {
		l.Log(ctx, requestEvent(r, audit.CategoryAuth, audit.EventSessionRefreshed, true))
		return
	}
	e := requestEvent(r, audit.CategoryAuth, audit.EventSessionRefreshFailed, false)
	e.FailureReason = err.Error()
	l.Log(ctx, e)
}

// PasswordResetRequested logs a forgot-password submission.
func (l *Logger) PasswordResetRequested(ctx context.Context, r *http.Request, email string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventPasswordResetRequest, true)
	e.Actor = email
	l.Log(ctx, e)
}

// PasswordResetVerified logs an accepted reset code.
func (l *Logger) PasswordResetVerified(ctx context.Context, r *http.Request, email string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventPasswordResetVerified, true)
	e.Actor = email
	l.Log(ctx, e)
}

// PasswordReset logs a completed reset.
func (l *Logger) PasswordReset(ctx context.Context, r *http.Request, email string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventPasswordReset, true)
	e.Actor = email
	l.Log(ctx, e)
}

// PasswordResetFailed logs a failed step of the reset flow.
func (l *Logger) PasswordResetFailed(ctx context.Context, r *http.Request, email, step, reason string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventPasswordResetFailed, false)
	e.Actor, e.FailureReason = email, reason
	e.Details = map[string]string{"step": step}
	l.Log(ctx, e)
}

// --- Admin Events ---

// EntityCreated logs a successful create. id may be empty when the API
// does not echo it.
func (l *Logger) EntityCreated(ctx context.Context, r *http.Request, entity, id string) {
	e := requestEvent(r, audit.CategoryAdmin, audit.EventEntityCreated, true)
	e.Entity, e.EntityID = entity, id
	l.Log(ctx, e)
}

// EntityUpdated logs a successful update.
func (l *Logger) EntityUpdated(ctx context.Context, r *http.Request, entity, id string) {
	e := requestEvent(r, audit.CategoryAdmin, audit.EventEntityUpdated, true)
	e.Entity, e.EntityID = entity, id
	l.Log(ctx, e)
}

// EntityDeleted logs a single delete. err is nil on success.
func (l *Logger) EntityDeleted(ctx context.Context, r *http.Request, entity, id string, err error) {
	e := requestEvent(r, audit.CategoryAdmin, audit.EventEntityDeleted, err == nil)
	e.Entity, e.EntityID = entity, id
	if err != nil {
		e.FailureReason = err.Error()
	}
	l.Log(ctx, e)
}

// BulkDeleted logs one bulk delete with its counts.
func (l *Logger) BulkDeleted(ctx context.Context, r *http.Request, entity string, succeeded, failed int) {
	e := requestEvent(r, audit.CategoryAdmin, audit.EventBulkDeleted, failed == 0)
	e.Entity = entity
	e.Details = map[string]string{
		"succeeded": strconv.Itoa(succeeded),
		"failed":    strconv.Itoa(failed),
	}
	l.Log(ctx, e)
}

// UploadCanceled logs a user-cancelled upload.
func (l *Logger) UploadCanceled(ctx context.Context, r *http.Request, entity, uploadID string) {
	e := requestEvent(r, audit.CategoryAdmin, audit.EventUploadCanceled, true)
	e.Entity = entity
	e.Details = map[string]string{"upload_id": uploadID}
	l.Log(ctx, e)
}

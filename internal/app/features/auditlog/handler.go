// internal/app/features/auditlog/handler.go
package auditlog

import (
	"github.com/dalemusser/couponadmin/internal/app/store/audit"
	"go.uber.org/zap"
)

// Handler serves the admin audit log. Store is nil when the dashboard
// runs without MongoDB; the page then says the log is disabled.
type Handler struct {
	Store *audit.Store
	Log   *zap.Logger
}

func NewHandler(store *audit.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

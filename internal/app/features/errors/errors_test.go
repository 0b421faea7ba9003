package errors_test

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/couponadmin/internal/app/features/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNotFound_HTMXGetsBare404(t *testing.T) {
	h := uierrors.NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/nowhere", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServerError_LogsAndFailsHTMX(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := uierrors.NewHandler(zap.New(core))

	req := httptest.NewRequest("GET", "/audit-log", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServerError(rec, req, "audit query failed", stderrors.New("boom"), "/")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}
	if logs.FilterMessage("audit query failed").Len() != 1 {
		t.Errorf("expected one log entry, got %d", logs.Len())
	}
}

// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoURIEnv names the variable pointing tests at a Mongo server.
const MongoURIEnv = "COUPONADMIN_TEST_MONGO_URI"

// TestContext returns a context bounded for a single test.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// SetupTestDB connects to the test Mongo server and returns a fresh,
// uniquely named database that is dropped when the test ends. The test is
// skipped when no server is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(MongoURIEnv)
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo unavailable: %v", err)
	}

	db := client.Database("couponadmin_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

// Admin and Provider are signed-in sessions for handler tests.
var (
	Admin    = &auth.SessionUser{Token: "admin-token", RefreshToken: "admin-refresh", Role: auth.RoleAdmin}
	Provider = &auth.SessionUser{Token: "provider-token", RefreshToken: "provider-refresh", Role: auth.RoleProvider}
)

// NewAuthenticatedRequest returns a request carrying u in its context.
func NewAuthenticatedRequest(method, target string, u *auth.SessionUser) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return r.WithContext(auth.WithUser(r.Context(), u))
}

// WithUser attaches u to r's context.
func WithUser(r *http.Request, u *auth.SessionUser) *http.Request {
	return r.WithContext(auth.WithUser(r.Context(), u))
}

// WithChiURLParam adds a chi URL parameter to the request context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, _ := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// HTMX marks r as an HTMX request.
func HTMX(r *http.Request) *http.Request {
	r.Header.Set("HX-Request", "true")
	return r
}

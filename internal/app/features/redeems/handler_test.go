package redeems

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"github.com/dalemusser/couponadmin/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func TestDetail_SkipsEmptyContactFields(t *testing.T) {
	tests := []struct {
		name string
		in   models.Redeem
		want []string
	}{
		{"bare", models.Redeem{}, []string{"Coupon", "Code", "Coupon price", "Customer", "Provider", "Amount", "Redeemed"}},
		{"contact", models.Redeem{CustomerEmail: "a@b.c", CustomerPhone: "555"},
			[]string{"Coupon", "Code", "Coupon price", "Customer", "Email", "Phone", "Provider", "Amount", "Redeemed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := detail(tt.in)
			if len(fields) != len(tt.want) {
				t.Fatalf("fields: %+v", fields)
			}
			for i, f := range fields {
				if f.Label != tt.want[i] {
					t.Errorf("field %d: got %q, want %q", i, f.Label, tt.want[i])
				}
			}
		})
	}
}

func TestRoutes_ReadOnly(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	h := NewHandler(remote.NewStores(api.Client(t), zap.NewNop()), crud.Deps{Log: zap.NewNop()})
	router := Routes(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(httptest.NewRequest("POST", "/5/delete", nil), testutil.Provider))
	if rec.Code != http.StatusMethodNotAllowed && rec.Code != http.StatusNotFound {
		t.Errorf("delete should not be routed, got %d", rec.Code)
	}

	found := false
	_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if method != http.MethodGet {
			t.Errorf("unexpected route %s %s", method, route)
		}
		found = true
		return nil
	})
	if !found {
		t.Error("no routes mounted")
	}
}

package seasonalevents

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleCreate_PostsJSON(t *testing.T) {
	tests := []struct {
		name    string
		coupons []string
		want    int
	}{
		{"with coupons", []string{"4", "9"}, 2},
		{"without coupons", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := testutil.NewFakeAPI(t)
			api.JSON("POST", "/seasonal-events/create", 201, `{"data":{"id":5}}`)
			h := NewHandler(remote.NewStores(api.Client(t), zap.NewNop()), crud.Deps{Log: zap.NewNop()})

			form := url.Values{"name": {"Ramadan"}, "from": {"2025-03-01"}, "to": {"2025-03-30"}}
			if tt.coupons != nil {
				form["coupons"] = tt.coupons
			}
			r := testutil.HTMX(testutil.WithUser(testutil.PostForm("/seasonal-events", form), testutil.Admin))
			rec := httptest.NewRecorder()
			h.Form.HandleCreate(rec, r)

			if rec.Header().Get("HX-Trigger") != crud.RefreshEvent {
				t.Fatalf("response: %d %v", rec.Code, rec.Header())
			}
			calls := api.CallsTo("POST", "/seasonal-events/create")
			if len(calls) != 1 || calls[0].ContentType != "application/json" {
				t.Fatalf("calls: %+v", api.Calls())
			}
			var body eventPayload
			if err := json.Unmarshal([]byte(calls[0].Body), &body); err != nil {
				t.Fatal(err)
			}
			if body.Name != "Ramadan" || body.Coupons == nil || len(body.Coupons) != tt.want {
				t.Errorf("body: %s", calls[0].Body)
			}
		})
	}
}

func TestHandleCreate_NonHTMXRedirects(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("POST", "/seasonal-events/create", 201, `{}`)
	h := NewHandler(remote.NewStores(api.Client(t), zap.NewNop()), crud.Deps{Log: zap.NewNop()})

	form := url.Values{"name": {"Eid"}, "from": {"2025-04-01"}, "to": {"2025-04-03"}, "return": {"/seasonal-events?page=2"}}
	rec := httptest.NewRecorder()
	h.Form.HandleCreate(rec, testutil.WithUser(testutil.PostForm("/seasonal-events", form), testutil.Admin))

	if rec.Code != 303 || rec.Header().Get("Location") != "/seasonal-events?page=2" {
		t.Errorf("response: %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

package categories

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"github.com/dalemusser/couponadmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	stores := remote.NewStores(api.Client(t), zap.NewNop())
	return NewHandler(stores, crud.Deps{Log: zap.NewNop()}), api
}

func post(target string, form url.Values) *http.Request {
	r := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return testutil.HTMX(testutil.WithUser(r, testutil.Admin))
}

func TestHandleCreate_SendsProviderArray(t *testing.T) {
	tests := []struct {
		name      string
		providers []string
		want      []string
	}{
		{"two providers", []string{"3", "4"}, []string{"3", "4"}},
		{"one provider", []string{"3"}, []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, api := newTestHandler(t)
			api.JSON("POST", "/categories/create", 201, `{"data":{"id":12}}`)

			rec := httptest.NewRecorder()
			h.Form.HandleCreate(rec, post("/categories", url.Values{"name": {"Food"}, "providers": tt.providers}))

			if rec.Header().Get("HX-Trigger") != crud.RefreshEvent {
				t.Fatalf("response: %d %v", rec.Code, rec.Header())
			}
			calls := api.CallsTo("POST", "/categories/create")
			if len(calls) != 1 {
				t.Fatalf("calls: %+v", api.Calls())
			}
			var body struct {
				Name      string   `json:"name"`
				Providers []string `json:"providers"`
			}
			if err := json.Unmarshal([]byte(calls[0].Body), &body); err != nil {
				t.Fatalf("body %q: %v", calls[0].Body, err)
			}
			if body.Name != "Food" || strings.Join(body.Providers, ",") != strings.Join(tt.want, ",") {
				t.Errorf("body: %+v", body)
			}
		})
	}
}

func TestHandleUpdate_UsesPut(t *testing.T) {
	h, api := newTestHandler(t)
	api.JSON("PUT", "/categories/4", 200, `{}`)

	r := testutil.WithChiURLParam(post("/categories/4/edit", url.Values{"name": {"Drinks"}}), "id", "4")
	rec := httptest.NewRecorder()
	h.Form.HandleUpdate(rec, r)

	if rec.Code != http.StatusOK || len(api.CallsTo("PUT", "/categories/4")) != 1 {
		t.Errorf("response %d, calls %+v", rec.Code, api.Calls())
	}
}

func TestHandleDelete_NotFoundStillRefreshes(t *testing.T) {
	h, api := newTestHandler(t)
	api.JSON("DELETE", "/categories/99", 404, `{"message":"Category not found"}`)

	r := testutil.WithChiURLParam(post("/categories/99/delete", url.Values{}), "id", "99")
	rec := httptest.NewRecorder()
	h.List.HandleDelete(rec, r)

	if rec.Header().Get("HX-Trigger") != crud.RefreshEvent {
		t.Errorf("HX-Trigger: %q", rec.Header().Get("HX-Trigger"))
	}
	if len(api.CallsTo("DELETE", "/categories/99")) != 1 {
		t.Errorf("calls: %+v", api.Calls())
	}
}

func TestSelected(t *testing.T) {
	f := categoryForm{Providers: []string{"1", "5"}}
	if !f.Selected("5") || f.Selected("2") {
		t.Error("Selected mismatch")
	}
}

func TestRow_ListsProviderNames(t *testing.T) {
	c := models.Category{ID: "1", Name: "Food", Providers: []models.Provider{{Name: "A"}, {Name: "B"}}}
	r := row(c)
	if got := r.Cells[2].List; len(got) != 2 || got[1] != "B" {
		t.Errorf("providers cell: %+v", r.Cells[2])
	}
}

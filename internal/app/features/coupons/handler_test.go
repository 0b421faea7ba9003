package coupons

import (
	"bytes"
	"mime/multipart"
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

func multipartRequest(t *testing.T, target string, fields map[string]string, file string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if file != "" {
		fw, err := mw.CreateFormFile("image", file)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write([]byte("PNGDATA"))
	}
	_ = mw.Close()

	r := httptest.NewRequest("POST", target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return testutil.HTMX(testutil.WithUser(r, testutil.Provider))
}

func validFields() map[string]string {
	return map[string]string{
		"name":           "Spring Sale",
		"code":           "SPRING10",
		"coupon_type_id": "3",
		"price":          "12.50",
		"status":         "active",
	}
}

func TestHandleCreate_SendsMultipart(t *testing.T) {
	h, api := newTestHandler(t)
	api.JSON("POST", "/coupons/create", 201, `{"data":{"id":9}}`)

	rec := httptest.NewRecorder()
	h.Form.HandleCreate(rec, multipartRequest(t, "/coupons", validFields(), "sale.png"))

	if rec.Code != http.StatusOK || rec.Header().Get("HX-Trigger") != crud.RefreshEvent {
		t.Fatalf("response: %d %v", rec.Code, rec.Header())
	}
	calls := api.CallsTo("POST", "/coupons/create")
	if len(calls) != 1 {
		t.Fatalf("calls: %+v", api.Calls())
	}
	c := calls[0]
	if !strings.HasPrefix(c.ContentType, "multipart/form-data") {
		t.Errorf("Content-Type: %q", c.ContentType)
	}
	if c.Auth != "Bearer provider-token" {
		t.Errorf("Authorization: %q", c.Auth)
	}
	for _, want := range []string{`name="status"`, "\r\n\r\n0\r\n", "PNGDATA", "SPRING10"} {
		if !strings.Contains(c.Body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestHandleCreate_MissingImageMakesNoCall(t *testing.T) {
	h, api := newTestHandler(t)

	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }() // dialog re-render needs the template engine
		h.Form.HandleCreate(rec, multipartRequest(t, "/coupons", validFields(), ""))
	}()

	if n := len(api.CallsTo("POST", "/coupons/create")); n != 0 {
		t.Errorf("expected no create call, got %d", n)
	}
}

func TestHandleCreate_InvalidPriceMakesNoCall(t *testing.T) {
	h, api := newTestHandler(t)
	fields := validFields()
	fields["price"] = "-3"

	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.Form.HandleCreate(rec, multipartRequest(t, "/coupons", fields, "sale.png"))
	}()

	if n := len(api.CallsTo("POST", "/coupons/create")); n != 0 {
		t.Errorf("expected no create call, got %d", n)
	}
}

func TestHandleUpdate_PostsJSONWithoutImage(t *testing.T) {
	h, api := newTestHandler(t)
	api.JSON("POST", "/coupons/update/5", 200, `{}`)

	form := url.Values{}
	for k, v := range validFields() {
		form.Set(k, v)
	}
	form.Set("status", "expired")
	r := httptest.NewRequest("POST", "/coupons/5/edit", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r = testutil.WithChiURLParam(testutil.WithUser(r, testutil.Admin), "id", "5")

	rec := httptest.NewRecorder()
	h.Form.HandleUpdate(rec, r)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/coupons" {
		t.Fatalf("response: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	calls := api.CallsTo("POST", "/coupons/update/5")
	if len(calls) != 1 {
		t.Fatalf("calls: %+v", api.Calls())
	}
	if calls[0].ContentType != "application/json" || !strings.Contains(calls[0].Body, `"status":"1"`) {
		t.Errorf("update body: %s %s", calls[0].ContentType, calls[0].Body)
	}
}

func TestRow(t *testing.T) {
	c := models.Coupon{ID: "1", Name: "Spring", Code: "S1", TypeName: "Percent", Price: "5", UsageCount: 1200, Status: "active", Image: "/i.png", CreatedAt: "2024-03-05"}
	r := row(c)
	if r.ID != "1" || len(r.Cells) != len(listConfig().Columns) {
		t.Fatalf("row: %+v", r)
	}
	if r.Cells[5].Text != "1,200" || r.Cells[6].Badge != "active" || r.Cells[0].Image != "/i.png" {
		t.Errorf("cells: %+v", r.Cells)
	}
}

package coupontypes

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"github.com/dalemusser/couponadmin/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleCreate_SendsImage(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("POST", "/coupon-types/create", 201, `{"data":{"id":6}}`)
	h := NewHandler(remote.NewStores(api.Client(t), zap.NewNop()), crud.Deps{Log: zap.NewNop()})

	img := testutil.FilePart{Field: "image", Filename: "pct.png", ContentType: "image/png", Data: "PNG"}
	r := testutil.HTMX(testutil.WithUser(
		testutil.PostMultipart(t, "/coupon-types", url.Values{"name": {"Percentage"}}, img), testutil.Admin))
	rec := httptest.NewRecorder()
	h.Form.HandleCreate(rec, r)

	if rec.Header().Get("HX-Trigger") != crud.RefreshEvent {
		t.Fatalf("response: %d %v", rec.Code, rec.Header())
	}
	if n := len(api.CallsTo("POST", "/coupon-types/create")); n != 1 {
		t.Errorf("create calls: %d", n)
	}
}

func TestNoEditRoutes(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	h := NewHandler(remote.NewStores(api.Client(t), zap.NewNop()), crud.Deps{Log: zap.NewNop()})
	if h.Form.Load != nil || h.Form.Update != nil {
		t.Error("coupon types have no update endpoint")
	}
}

func TestRow(t *testing.T) {
	r := row(models.CouponType{ID: "1", Name: "Fixed", CouponCount: 3, Image: "/i.png", Status: "pending"})
	if r.Cells[0].Image != "/i.png" || r.Cells[2].Text != "3" || r.Cells[3].Badge != "pending" {
		t.Errorf("cells: %+v", r.Cells)
	}
}

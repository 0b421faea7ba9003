package complaints

import (
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

func TestDetail_SanitizesContent(t *testing.T) {
	c := models.Complaint{
		UserName:         "Sara",
		Title:            "Rude staff",
		Content:          `<p>Bad</p><script>alert(1)</script>`,
		ComplainableType: "provider",
		Complainable:     &models.Complainable{Name: "Pizza Place", Location: "Riyadh"},
	}
	fields := detail(c)

	var content string
	labels := map[string]bool{}
	for _, f := range fields {
		labels[f.Label] = true
		if f.Label == "Complaint" {
			content = string(f.Value.HTML)
		}
	}
	if strings.Contains(content, "script") || !strings.Contains(content, "Bad") {
		t.Errorf("content not sanitized: %q", content)
	}
	if !labels["Location"] || labels["Price"] {
		t.Errorf("optional subject fields: %v", labels)
	}
}

func TestRow_UnknownSubject(t *testing.T) {
	r := row(models.Complaint{ID: "3", ComplainableType: ""})
	if r.Cells[2].Text != "Other" || r.Cells[3].Text != "Unknown" {
		t.Errorf("cells: %+v", r.Cells)
	}
}

func TestBulkDelete_UsesComplainsEndpoint(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("DELETE", "/complains/1", 200, `{}`)
	api.JSON("DELETE", "/complains/2", 500, `{"message":"Server error"}`)
	h := NewHandler(remote.NewStores(api.Client(t), zap.NewNop()), crud.Deps{Log: zap.NewNop()})

	form := url.Values{"ids": {"1", "2"}}
	r := httptest.NewRequest("POST", "/complaints/bulk-delete", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r = testutil.HTMX(testutil.WithUser(r, testutil.Admin))
	rec := httptest.NewRecorder()
	h.List.HandleBulkDelete(rec, r)

	if rec.Header().Get("HX-Trigger") != crud.FirstPageEvent {
		t.Errorf("HX-Trigger: %q", rec.Header().Get("HX-Trigger"))
	}
	if len(api.CallsTo("DELETE", "/complains/1")) != 1 || len(api.CallsTo("DELETE", "/complains/2")) != 1 {
		t.Errorf("calls: %+v", api.Calls())
	}
}

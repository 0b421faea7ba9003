package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := apiclient.New(srv.URL+"/api", 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return c
}

func signedIn(token string) context.Context {
	return auth.WithUser(context.Background(), &auth.SessionUser{Token: token, Role: "admin"})
}

func TestGet_AttachesBearerAndQuery(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":{"data":[],"last_page":1}}`))
	})

	var out map[string]any
	q := url.Values{"page": {"2"}, "search": {"pizza"}}
	if err := c.Get(signedIn("abc"), "/categories/index", q, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}

	if gotAuth != "Bearer abc" {
		t.Errorf("Authorization: got %q, want %q", gotAuth, "Bearer abc")
	}
	if gotPath != "/api/categories/index" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotQuery != "page=2&search=pizza" {
		t.Errorf("query: got %q", gotQuery)
	}
	if _, ok := out["data"]; !ok {
		t.Errorf("expected decoded body, got %v", out)
	}
}

func TestGet_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	})
	if err := c.Get(context.Background(), "/auth/ping", nil, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization: got %q, want empty", gotAuth)
	}
}

func TestDo_ErrorCarriesStatusAndMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 404, `{"message":"Category not found"}`, "404: Category not found"},
		{"error field", 403, `{"error":"Forbidden for providers"}`, "403: Forbidden for providers"},
		{"validation errors", 422, `{"errors":{"name":["The name field is required."]}}`, "422: The name field is required."},
		{"empty body", 500, ``, "500: Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			err := c.Delete(signedIn("t"), "/categories/99", nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apiclient.StatusOf(err); got != tt.status {
				t.Errorf("StatusOf: got %d, want %d", got, tt.status)
			}
			if got := apiclient.Describe(err); got != tt.want {
				t.Errorf("Describe: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDo_NetworkError(t *testing.T) {
	c, err := apiclient.New("http://127.0.0.1:1/api", time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = c.Get(context.Background(), "/coupons/index", nil, nil)
	if !errors.Is(err, apiclient.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if apiclient.StatusOf(err) != 0 {
		t.Errorf("network errors carry no status")
	}
	if !strings.HasPrefix(apiclient.Describe(err), "Network error") {
		t.Errorf("Describe: got %q", apiclient.Describe(err))
	}
}

func TestPost_FormWithoutFilesIsJSON(t *testing.T) {
	var ct string
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
	})

	f := &apiclient.Form{}
	f.Set("name", "Food").Set("providers[]", "3").Set("providers[]", "4")
	if err := c.Post(signedIn("t"), "/categories/create", f, nil); err != nil {
		t.Fatalf("Post: %v", err)
	}

	if ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if body["name"] != "Food" {
		t.Errorf("name: got %v", body["name"])
	}
	providers, ok := body["providers"].([]any)
	if !ok || len(providers) != 2 {
		t.Errorf("providers: got %#v", body["providers"])
	}
}

func TestPost_FormWithFileIsMultipart(t *testing.T) {
	var fields map[string][]string
	var fileName, fileBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		fields = r.MultipartForm.Value
		fh := r.MultipartForm.File["image"][0]
		fileName = fh.Filename
		f, _ := fh.Open()
		b, _ := io.ReadAll(f)
		fileBody = string(b)
	})

	f := &apiclient.Form{}
	f.Set("name", "Spring Sale")
	f.Attach(apiclient.File{
		Field:    "image",
		Filename: "sale.png",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("PNGDATA")), nil
		},
	})
	if err := c.Post(signedIn("t"), "/coupons/create", f, nil); err != nil {
		t.Fatalf("Post: %v", err)
	}

	if got := fields["name"]; len(got) != 1 || got[0] != "Spring Sale" {
		t.Errorf("name field: got %v", got)
	}
	if fileName != "sale.png" || fileBody != "PNGDATA" {
		t.Errorf("file: got %q (%q)", fileName, fileBody)
	}
}

func TestUploads_CancelAbortsRequest(t *testing.T) {
	started := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	id := apiclient.NewID()
	ctx, done := c.Uploads().Track(signedIn("t"), id, "owner-a")
	defer done()

	errc := make(chan error, 1)
	go func() { errc <- c.Post(ctx, "/reels/create", map[string]string{"a": "b"}, nil) }()

	<-started
	if c.Uploads().Cancel(id, "owner-b") {
		t.Fatal("another owner must not cancel the upload")
	}
	if !c.Uploads().Cancel(id, "owner-a") {
		t.Fatal("expected pending upload to be found")
	}
	err := <-errc
	if !apiclient.Cancelled(err) {
		t.Errorf("expected cancellation error, got %v", err)
	}
	if c.Uploads().Cancel(id, "owner-a") {
		t.Error("second cancel should find nothing")
	}
}

func TestUploads_TrackIgnoresMalformedID(t *testing.T) {
	u := apiclient.NewUploads()
	ctx := context.Background()
	got, done := u.Track(ctx, "not-a-uuid", "owner-a")
	defer done()
	if got != ctx {
		t.Error("expected context to be returned unchanged")
	}
	if u.Pending() != 0 {
		t.Errorf("Pending: got %d, want 0", u.Pending())
	}
}

func TestNew_RejectsBadScheme(t *testing.T) {
	if _, err := apiclient.New("ftp://example.com", 0, zap.NewNop()); err == nil {
		t.Error("expected error for non-http scheme")
	}
}

package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"go.uber.org/zap"
)

// Call is one request the fake API received.
type Call struct {
	Method      string
	Path        string
	Query       string
	Auth        string
	ContentType string
	Body        string
}

// FakeAPI is an httptest server standing in for the remote coupon API.
// Routes are keyed by "METHOD /path" relative to /api. Unknown routes
// answer 404 with a JSON message.
type FakeAPI struct {
	srv *httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []Call
}

// NewFakeAPI starts a fake API closed at test end.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{routes: map[string]http.HandlerFunc{}}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

// BaseURL is the API base, ending in /api.
func (f *FakeAPI) BaseURL() string {
	return f.srv.URL + "/api"
}

// Client returns an API client pointed at the fake.
func (f *FakeAPI) Client(t *testing.T) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(f.BaseURL(), 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return c
}

// Handle registers fn for method and path.
func (f *FakeAPI) Handle(method, path string, fn http.HandlerFunc) {
	f.mu.Lock()
	f.routes[method+" "+path] = fn
	f.mu.Unlock()
}

// JSON registers a canned reply.
func (f *FakeAPI) JSON(method, path string, status int, body string) {
	f.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// Calls returns a copy of every request received so far.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the requests matching method and path.
func (f *FakeAPI) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.calls = append(f.calls, Call{
		Method:      r.Method,
		Path:        path,
		Query:       r.URL.RawQuery,
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(body),
	})
	fn, ok := f.routes[r.Method+" "+path]
	f.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not found"}`)
		return
	}
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	fn(w, r)
}

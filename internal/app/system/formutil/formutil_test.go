package formutil_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
)

type categoryForm struct {
	Name      string   `schema:"name"`
	Providers []string `schema:"providers"`
	Limit     int      `schema:"limit"`
}

func TestDecode_URLEncoded(t *testing.T) {
	body := url.Values{"name": {"Food"}, "providers": {"3", "4"}, "limit": {"5"}, "extra": {"x"}}
	r := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in categoryForm
	ups, err := formutil.Decode(r, &in, "image")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.Name != "Food" || len(in.Providers) != 2 || in.Limit != 5 {
		t.Errorf("decoded: %+v", in)
	}
	if ups.Get("image").Present() {
		t.Error("no file was sent")
	}
	if err := ups.Require("image", "Image"); err == nil || err.Error() != "Image is required." {
		t.Errorf("Require: got %v", err)
	}
}

func TestDecode_BadNumber(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader("name=x&limit=many"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in categoryForm
	if _, err := formutil.Decode(r, &in); err == nil {
		t.Error("expected error for non-numeric limit")
	}
}

func TestDecode_MultipartWithFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("name", "Spring")
	fw, _ := mw.CreateFormFile("image", "banner.png")
	_, _ = fw.Write([]byte("PNG"))
	_ = mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/banners", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	var in categoryForm
	ups, err := formutil.Decode(r, &in, "image")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.Name != "Spring" {
		t.Errorf("Name: got %q", in.Name)
	}
	up := ups.Get("image")
	if !up.Present() {
		t.Fatal("expected image upload")
	}
	f := up.File()
	if f.Field != "image" || f.Filename != "banner.png" {
		t.Errorf("File: %+v", f)
	}
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	if b, _ := io.ReadAll(rc); string(b) != "PNG" {
		t.Errorf("content: got %q", b)
	}
}

func TestIDs(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/coupons/bulk-delete", strings.NewReader("ids=1&ids=+2+&ids=&ids=3"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got := formutil.IDs(r, "ids")
	if strings.Join(got, ",") != "1,2,3" {
		t.Errorf("IDs: got %v", got)
	}
}

func TestBase_SetErrorEscapes(t *testing.T) {
	var b formutil.Base
	b.SetError("<b>422</b>: bad")
	if string(b.Error) != "&lt;b&gt;422&lt;/b&gt;: bad" {
		t.Errorf("Error: got %q", b.Error)
	}
}

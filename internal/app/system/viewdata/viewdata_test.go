package viewdata_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
)

func TestDisplayOrder(t *testing.T) {
	cols := []string{"ID", "Name", "Status"}

	ltr := viewdata.DisplayOrder("en", cols)
	if ltr[0] != "ID" || ltr[2] != "Status" {
		t.Errorf("en: got %v", ltr)
	}

	for _, loc := range []string{"ar", "he", "fa", "ur", "AR-sa"} {
		rtl := viewdata.DisplayOrder(loc, cols)
		if rtl[0] != "Status" || rtl[2] != "ID" {
			t.Errorf("%s: got %v", loc, rtl)
		}
	}
	if cols[0] != "ID" {
		t.Error("input must not be modified")
	}
	if got := viewdata.DisplayOrder[int]("ar", nil); len(got) != 0 {
		t.Errorf("nil input: got %v", got)
	}
}

func TestLocale(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		cookie string
		want   string
	}{
		{"default", "/coupons", "", "en"},
		{"query", "/coupons?lang=ar", "", "ar"},
		{"cookie", "/coupons", "he-IL", "he"},
		{"query beats cookie", "/coupons?lang=fr", "ar", "fr"},
		{"junk", "/coupons?lang=x", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: viewdata.LocaleCookie, Value: tt.cookie})
			}
			if got := viewdata.Locale(r); got != tt.want {
				t.Errorf("Locale: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNavFor_MarksLongestMatch(t *testing.T) {
	nav := viewdata.NavFor("admin", "/coupons/packages")
	for _, n := range nav {
		want := n.Path == "/coupons/packages"
		if n.Active != want {
			t.Errorf("%s active = %v, want %v", n.Path, n.Active, want)
		}
	}
	if viewdata.NavFor("visitor", "/") != nil {
		t.Error("unknown role has no nav")
	}
	for _, n := range viewdata.NavFor("provider", "/reels") {
		if n.Path == "/categories" {
			t.Error("providers must not see categories")
		}
	}
}

func TestNewBaseVM(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/reels?lang=ar", nil)
	r = r.WithContext(auth.WithUser(r.Context(), &auth.SessionUser{Token: "t", Role: "provider"}))

	vm := viewdata.NewBaseVM(httptest.NewRecorder(), r, "Reels", "/provider-dashboard")

	if !vm.IsLoggedIn || vm.Role != "provider" || vm.IsAdmin {
		t.Errorf("user fields: %+v", vm)
	}
	if !vm.RTL || vm.Locale != "ar" {
		t.Errorf("locale fields: %q rtl=%v", vm.Locale, vm.RTL)
	}
	if vm.Title != "Reels" || vm.CurrentPath == "" {
		t.Errorf("page fields: %+v", vm)
	}
	if len(vm.Nav) == 0 {
		t.Error("expected nav for signed-in provider")
	}
}

package inputval

import "testing"

type couponInput struct {
	Name       string `validate:"required,max=10" label:"Name"`
	Email      string `validate:"omitempty,email" label:"Contact email"`
	Price      string `validate:"required,price" label:"Price"`
	Status     string `validate:"omitempty,oneof=active expired pending" label:"Status"`
	From       string `validate:"omitempty,date" label:"Start date"`
	To         string `validate:"omitempty,date,dateafter=From" label:"End date"`
	Password   string
	Confirm    string `validate:"eqfield=Password" label:"Password confirmation"`
	UsageLimit int    `validate:"gte=0" label:"Usage limit"`
	Website    string `validate:"omitempty,httpurl" label:"Website"`
}

func valid() couponInput {
	return couponInput{Name: "Pizza", Price: "9.99", Status: "active", From: "2024-01-01", To: "2024-02-01"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*couponInput)
		wantFirst string
	}{
		{"valid", func(*couponInput) {}, ""},
		{"missing name", func(c *couponInput) { c.Name = "" }, "Name is required."},
		{"name too long", func(c *couponInput) { c.Name = "VeryLongCouponName" }, "Name must be at most 10 characters."},
		{"bad email", func(c *couponInput) { c.Email = "not-an-email" }, "A valid email address is required."},
		{"negative price", func(c *couponInput) { c.Price = "-1" }, "Price must be a non-negative amount."},
		{"garbage price", func(c *couponInput) { c.Price = "ten" }, "Price must be a non-negative amount."},
		{"unknown status", func(c *couponInput) { c.Status = "paused" }, "Status must be one of: active, expired, pending."},
		{"bad date", func(c *couponInput) { c.From = "01/02/2024" }, "Start date must be a date (YYYY-MM-DD)."},
		{"end before start", func(c *couponInput) { c.To = "2023-12-31" }, "End date must be on or after Start date."},
		{"password mismatch", func(c *couponInput) { c.Password = "a"; c.Confirm = "b" }, "Password confirmation must match Password."},
		{"negative limit", func(c *couponInput) { c.UsageLimit = -2 }, "Usage limit must be at least 0."},
		{"bad website", func(c *couponInput) { c.Website = "ftp://x" }, "Website must be a valid http or https URL."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			res := Validate(in)
			if got := res.First(); got != tt.wantFirst {
				t.Errorf("First() = %q, want %q", got, tt.wantFirst)
			}
			if res.HasErrors() != (tt.wantFirst != "") {
				t.Errorf("HasErrors() = %v", res.HasErrors())
			}
		})
	}
}

func TestValidate_Pointer(t *testing.T) {
	in := valid()
	in.Name = ""
	if res := Validate(&in); res.First() != "Name is required." {
		t.Errorf("First() = %q", res.First())
	}
}

func TestResult_AllAndByField(t *testing.T) {
	in := valid()
	in.Name = ""
	in.Price = ""

	res := Validate(in)

	if got, want := res.All(), "Name is required.; Price is required."; got != want {
		t.Errorf("All() = %q, want %q", got, want)
	}
	by := res.ByField()
	if by["Name"] != "Name is required." || by["Price"] != "Price is required." {
		t.Errorf("ByField() = %v", by)
	}
	if (&Result{}).All() != "" || (&Result{}).First() != "" {
		t.Error("empty result should give empty messages")
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user+tag@example.co.uk", true},
		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsValidHTTPURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com", true},
		{"http://localhost:8000/api", true},
		{"example.com", false},
		{"ftp://example.com", false},
		{"https://", false},
	}
	for _, tt := range tests {
		if got := IsValidHTTPURL(tt.url); got != tt.want {
			t.Errorf("IsValidHTTPURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-28"); !ok {
		t.Error("IsValidDate(2025-02-28) = false, want true")
	}
	if _, ok := IsValidDate("2025-13-01"); ok {
		t.Error("IsValidDate(2025-13-01) = true, want false")
	}
	if _, ok := IsValidDate("28-02-2025"); ok {
		t.Error("IsValidDate(28-02-2025) = true, want false")
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"1234-5678", "0001-0002"}
	invalid := []string{"12345678", "123-45678", "abcd-efgh", ""}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "period_month", Message: "must be between 1 and 12"},
		{Field: "amount", Message: "must be greater than zero"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() len = %d, want 2", len(m))
	}
	if m["period_month"] != "must be between 1 and 12" {
		t.Errorf("ToMap()[period_month] = %q", m["period_month"])
	}
	if errs.Error() != "period_month: must be between 1 and 12; amount: must be greater than zero" {
		t.Errorf("Error() = %q", errs.Error())
	}
}

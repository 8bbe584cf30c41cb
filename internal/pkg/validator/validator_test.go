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

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "08:00", "12:59", "23:59"}
	invalid := []string{"24:00", "8:00", "08:60", "08:00:00", "0800", ""}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidateDateRange(t *testing.T) {
	var errs ValidationErrors
	ValidateDateRange(&errs, "start_date", "2025-01-10", "end_date", "2025-01-09")
	if len(errs) != 1 || errs[0].Field != "end_date" {
		t.Fatalf("ValidateDateRange reversed range = %v, want one end_date error", errs)
	}

	errs = nil
	ValidateDateRange(&errs, "start_date", "2025-01-10", "end_date", "2025-01-10")
	if errs.Err() != nil {
		t.Errorf("ValidateDateRange same day = %v, want nil", errs)
	}

	errs = nil
	ValidateDateRange(&errs, "start_date", "bad", "end_date", "")
	if len(errs) != 2 {
		t.Errorf("ValidateDateRange invalid bounds = %d errors, want 2", len(errs))
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "invalid"},
		{Field: "time", Message: "required"},
	}
	got := errs.Error()
	want := "date: invalid; time: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "invalid"},
		{Field: "time", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"date": "invalid", "time": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_ErrNilWhenEmpty(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Errorf("empty ValidationErrors.Err() = %v, want nil", errs.Err())
	}
	errs.Add("x", "bad")
	if errs.Err() == nil {
		t.Errorf("ValidationErrors.Err() = nil after Add")
	}
}

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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0195ec93-3f4c-7d9a-b1a2-3c4d5e6f7a8b",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{"", "not-a-uuid", "123e4567e89b12d3a456426614174000", "123e4567-e89b-92d3-a456-426614174000"}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-01-31"); !ok {
		t.Error("IsValidDate(2025-01-31) = false, want true")
	}
	for _, s := range []string{"", "31-01-2025", "2025-13-01", "2025-02-30"} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"calculated", "approved"}
	if !IsInSlice("approved", slice) {
		t.Error("IsInSlice(approved) = false, want true")
	}
	if IsInSlice("processed", slice) {
		t.Error("IsInSlice(processed) = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "reason", Message: "is required"},
		{Field: "error_type", Message: "is not a supported error type"},
	}

	msg := errs.Error()
	if msg != "reason: is required; error_type: is not a supported error type" {
		t.Errorf("unexpected message %q", msg)
	}

	m := errs.ToMap()
	if m["reason"] != "is required" {
		t.Errorf("ToMap missing reason, got %v", m)
	}
	if len(m) != 2 {
		t.Errorf("ToMap size = %d, want 2", len(m))
	}
}

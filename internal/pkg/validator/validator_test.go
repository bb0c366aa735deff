package validator

import (
	"testing"
	"time"
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
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"urn:uuid:123e4567-e89b-12d3-a456-426614174000",
		"",
	}
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
	valid := []string{"2024-01-31", "2024-02-29"}
	invalid := []string{"2023-02-29", "2024-13-01", "31-01-2024", ""}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidDateIn(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	got, ok := IsValidDateIn("2024-03-04", loc)
	if !ok {
		t.Fatalf("IsValidDateIn returned false")
	}
	if got.Location() != loc || got.Hour() != 0 || got.Day() != 4 {
		t.Errorf("IsValidDateIn = %v, want midnight 2024-03-04 IST", got)
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:00", "18:30", "23:59"}
	invalid := []string{"24:00", "9:00", "09:60", "0900", "", "ab:cd"}
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

func TestIsValidDateTime(t *testing.T) {
	if _, ok := IsValidDateTime("2024-01-15T10:30:00+05:30"); !ok {
		t.Error("expected offset timestamp to parse")
	}
	if _, ok := IsValidDateTime("2024-01-15T10:30:00.123Z"); !ok {
		t.Error("expected fractional timestamp to parse")
	}
	if _, ok := IsValidDateTime("2024-01-15 10:30"); ok {
		t.Error("expected space separated timestamp to fail")
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"Present", "Late", "Half Day"}
	if !IsInSlice("Late", slice) {
		t.Error("IsInSlice should find Late")
	}
	if IsInSlice("late", slice) {
		t.Error("IsInSlice should be case sensitive")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "latitude is required"},
		{Field: "longitude", Message: "longitude is required"},
	}
	want := "latitude: latitude is required; longitude: longitude is required"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	var errs ValidationErrors
	errs.Add("page", "page must be a positive number")
	m := errs.ToMap()
	if m["page"] != "page must be a positive number" {
		t.Errorf("ToMap()[page] = %q", m["page"])
	}
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Error("empty ValidationErrors should yield nil error")
	}
	errs.Add("limit", "limit must not exceed 100")
	if errs.Err() == nil {
		t.Error("non-empty ValidationErrors should yield an error")
	}
}

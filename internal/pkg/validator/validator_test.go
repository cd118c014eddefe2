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

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidIP(t *testing.T) {
	valid := []string{"192.168.1.1", "10.0.0.5", "2001:db8::1"}
	invalid := []string{"192.168.1", "999.1.1.1", "not-an-ip", ""}
	for _, ip := range valid {
		if !IsValidIP(ip) {
			t.Errorf("IsValidIP(%q) = false, want true", ip)
		}
	}
	for _, ip := range invalid {
		if IsValidIP(ip) {
			t.Errorf("IsValidIP(%q) = true, want false", ip)
		}
	}
}

func TestIsAllowedImageExt(t *testing.T) {
	valid := []string{"photo.jpg", "scan.JPEG", "proof.png"}
	invalid := []string{"doc.pdf", "archive.zip", "noext", "image.gif"}
	for _, f := range valid {
		if !IsAllowedImageExt(f) {
			t.Errorf("IsAllowedImageExt(%q) = false, want true", f)
		}
	}
	for _, f := range invalid {
		if IsAllowedImageExt(f) {
			t.Errorf("IsAllowedImageExt(%q) = true, want false", f)
		}
	}
}

func TestIsValidStaffID(t *testing.T) {
	valid := []string{"NRS-001", "dr_sari", "A1B2C3"}
	invalid := []string{"ab", "with spaces", "way-too-long-staff-id-value", "em@il"}
	for _, s := range valid {
		if !IsValidStaffID(s) {
			t.Errorf("IsValidStaffID(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidStaffID(s) {
			t.Errorf("IsValidStaffID(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "required"},
		{Field: "shift", Message: "required"},
	}
	got := errs.Error()
	want := "name: required; shift: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "required"},
		{Field: "shift", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"name": "required", "shift": "required"}
	if len(got) != len(want) {
		t.Errorf("ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

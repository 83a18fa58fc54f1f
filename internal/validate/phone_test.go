package validate

import "testing"

func TestNormalizePhone_AcceptedForms(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+7 999 123-45-67", "+79991234567"},
		{"8 (999) 123-45-67", "89991234567"},
		{"7 999 123 45 67", "79991234567"},
		{"999 123-45-67", "9991234567"},
		{"+7 495 123-45-67", "+74951234567"},
		{"8 800 555-35-35", "88005553535"},
	}
	for _, tc := range cases {
		got, ok := NormalizePhone(tc.in)
		if !ok {
			t.Fatalf("NormalizePhone(%q) rejected", tc.in)
		}
		if got != tc.want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once, ok := NormalizePhone("+7 (999) 123-45-67")
	if !ok {
		t.Fatalf("first normalize rejected")
	}
	twice, ok := NormalizePhone(once)
	if !ok {
		t.Fatalf("second normalize rejected %q", once)
	}
	if once != twice {
		t.Fatalf("normalize not idempotent: %q vs %q", once, twice)
	}
}

func TestNormalizePhone_Rejected(t *testing.T) {
	for _, in := range []string{
		"",
		"12345",
		"+1 555 123 4567",
		"999123456",      // too short
		"+7 199 123-45-67", // local part must start 4/8/9
		"not a phone",
	} {
		if got, ok := NormalizePhone(in); ok {
			t.Fatalf("NormalizePhone(%q) accepted as %q", in, got)
		}
	}
}

func TestFormatPhone(t *testing.T) {
	if got := FormatPhone("+79991234567"); got != "+7 (999) 123-45-67" {
		t.Fatalf("FormatPhone 11-digit = %q", got)
	}
	if got := FormatPhone("9991234567"); got != "+7 (999) 123-45-67" {
		t.Fatalf("FormatPhone 10-digit = %q", got)
	}
	if got := FormatPhone("oddball"); got != "oddball" {
		t.Fatalf("FormatPhone passthrough = %q", got)
	}
}

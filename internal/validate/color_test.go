package validate

import "testing"

func TestNormalizeHexColor_ShorthandExpansion(t *testing.T) {
	got, ok := NormalizeHexColor("#ABC")
	if !ok {
		t.Fatalf("shorthand rejected")
	}
	if got != "#AABBCC" {
		t.Fatalf("NormalizeHexColor(#ABC) = %q, want #AABBCC", got)
	}
	again, ok := NormalizeHexColor(got)
	if !ok || again != got {
		t.Fatalf("canonical form not stable: %q -> %q", got, again)
	}
}

func TestNormalizeHexColor_Uppercasing(t *testing.T) {
	got, ok := NormalizeHexColor("#4caf50")
	if !ok {
		t.Fatalf("lowercase rejected")
	}
	if got != "#4CAF50" {
		t.Fatalf("got %q, want #4CAF50", got)
	}
}

func TestNormalizeHexColor_Rejected(t *testing.T) {
	for _, in := range []string{"", "#AB", "#ABCD", "ABCDEF", "#GGHHII", "#12345"} {
		if got, ok := NormalizeHexColor(in); ok {
			t.Fatalf("NormalizeHexColor(%q) accepted as %q", in, got)
		}
	}
}

func TestValidEmail(t *testing.T) {
	for _, in := range []string{"user@example.com", "a.b+c@mail.co", "x_1%y@sub.domain.org"} {
		if !ValidEmail(in) {
			t.Fatalf("ValidEmail(%q) = false", in)
		}
	}
	for _, in := range []string{"", "user", "user@", "@example.com", "user@example", "user@@example.com"} {
		if ValidEmail(in) {
			t.Fatalf("ValidEmail(%q) = true", in)
		}
	}
}

func TestFieldErrors_AccumulateAndError(t *testing.T) {
	fe := make(FieldErrors)
	fe.Add("phone", "bad phone")
	fe.Add("email", "bad email")
	fe.Add("phone", "second message is dropped")

	if len(fe) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(fe))
	}
	if fe["phone"] != "bad phone" {
		t.Fatalf("first message not kept: %q", fe["phone"])
	}
	want := "validation failed: email: bad email; phone: bad phone"
	if fe.Error() != want {
		t.Fatalf("Error() = %q, want %q", fe.Error(), want)
	}
	if (FieldErrors{}).OrNil() != nil {
		t.Fatalf("empty OrNil should be nil")
	}
	if fe.OrNil() == nil {
		t.Fatalf("non-empty OrNil should be an error")
	}
}

package validate_test

import (
	"testing"

	"pricesmart/internal/validate"
)

func TestQuery(t *testing.T) {
	if _, ok := validate.Query("a"); ok {
		t.Fatal("single char must fail")
	}
	if _, ok := validate.Query("  "); ok {
		t.Fatal("whitespace must fail")
	}
	if q, ok := validate.Query(" wireless headphones "); !ok || q != "wireless headphones" {
		t.Fatalf("got (%q,%v)", q, ok)
	}
	if _, ok := validate.Query("<script>"); ok {
		t.Fatal("markup must fail")
	}
}

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("alice@example.com"); !ok {
		t.Fatal("valid email rejected")
	}
	for _, bad := range []string{"", "nope", "a@b", "a b@c.com"} {
		if _, ok := validate.Email(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestPassword(t *testing.T) {
	if validate.Password("short1A") {
		t.Fatal("too short accepted")
	}
	if validate.Password("alllowercase1") {
		t.Fatal("no uppercase accepted")
	}
	if !validate.Password("Sup3rSecret") {
		t.Fatal("valid password rejected")
	}
}

func TestPrice(t *testing.T) {
	if validate.Price("1500") != 1500 {
		t.Fatal("valid price")
	}
	if validate.Price("-5") != -1 || validate.Price("abc") != -1 {
		t.Fatal("invalid prices must map to -1")
	}
}

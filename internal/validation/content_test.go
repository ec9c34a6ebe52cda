package validation

import (
	"strings"
	"testing"
)

func TestValidateHandle(t *testing.T) {
	for _, handle := range []string{"ada", "ada2", "ada_1756400000", "a"} {
		if err := ValidateHandle(handle); err != nil {
			t.Fatalf("expected %q to be valid: %v", handle, err)
		}
	}
	for _, handle := range []string{"", "Ada", "ada.lovelace", "ada-lovelace", strings.Repeat("a", 65), "admin", "feed"} {
		if err := ValidateHandle(handle); err == nil {
			t.Fatalf("expected %q to be rejected", handle)
		}
	}
}

func TestNormalizeHandle(t *testing.T) {
	cases := map[string]string{
		"Ada":          "ada",
		"ada.lovelace": "adalovelace",
		"ada+tag":      "adatag",
		"ada_l":        "ada_l",
		"日本":           "",
	}
	for in, want := range cases {
		if got := NormalizeHandle(in); got != want {
			t.Fatalf("NormalizeHandle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidatePostContent(t *testing.T) {
	if err := ValidatePostContent("hello"); err != nil {
		t.Fatalf("expected valid content: %v", err)
	}
	if err := ValidatePostContent(strings.Repeat("x", MaxPostContentLength)); err != nil {
		t.Fatalf("expected max-length content to be valid: %v", err)
	}
	for _, content := range []string{"", "   ", "\n\t", strings.Repeat("x", MaxPostContentLength+1)} {
		if err := ValidatePostContent(content); err == nil {
			t.Fatalf("expected %q to be rejected", content)
		}
	}
}

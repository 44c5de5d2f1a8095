// Package textx contains tests for the text utilities.
package textx

import "testing"

func TestSanitizeText(t *testing.T) {
	in := "he\x00llo\nwo\x7frld\t!"
	got := SanitizeText(in)
	if got != "hello\nworld\t!" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abcd..." {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Truncate("abc", 4); got != "abc" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Truncate("abc", 0); got != "abc" {
		t.Fatalf("unexpected: %q", got)
	}
}

package util

import "testing"

func TestSanitizeText_StripsControlCharacters(t *testing.T) {
	in := "hello\x00world\x1b[0m"
	got := SanitizeText(in)
	if got != "helloworld[0m" {
		t.Fatalf("unexpected sanitized text: %q", got)
	}
}

func TestSanitizeText_KeepsWhitespace(t *testing.T) {
	got := SanitizeText("line one\nline two\ttabbed\r\n")
	if got != "line one\nline two\ttabbed" {
		t.Fatalf("interior newlines and tabs must survive: %q", got)
	}
}

func TestCountWords(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"two  words", 2},
		{"\tmixed\nwhitespace  separators ", 3},
	}
	for _, c := range cases {
		if got := CountWords(c.in); got != c.want {
			t.Fatalf("CountWords(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

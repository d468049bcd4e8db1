package util

import (
	"strings"
	"testing"
)

func TestSplitText_ShortTextPassesThrough(t *testing.T) {
	chunks := SplitText("short", 4000)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Fatalf("unexpected chunks: %#v", chunks)
	}
}

func TestSplitText_EmptyInput(t *testing.T) {
	chunks := SplitText("", 4000)
	if len(chunks) != 1 || chunks[0] != "" {
		t.Fatalf("empty input should yield one empty chunk: %#v", chunks)
	}
}

func TestSplitText_ReconstructsInput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 120; i++ {
		b.WriteString("A sentence with some filler words to push past the boundary. ")
		if i%7 == 0 {
			b.WriteString("\n\n")
		}
	}
	text := b.String()
	chunks := SplitText(text, 500)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Fatalf("concatenated chunks do not reconstruct the input")
	}
	for i, c := range chunks {
		if c == "" {
			t.Fatalf("chunk %d is empty", i)
		}
		if n := len([]rune(c)); n > 500 {
			t.Fatalf("chunk %d exceeds the limit: %d runes", i, n)
		}
	}
}

func TestSplitText_PrefersParagraphBreak(t *testing.T) {
	text := strings.Repeat("a", 100) + "\n\n" + strings.Repeat("b", 100)
	chunks := SplitText(text, 150)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Fatalf("first chunk should end at the paragraph break: %q", chunks[0])
	}
	if chunks[1] != strings.Repeat("b", 100) {
		t.Fatalf("second chunk lost content: %q", chunks[1])
	}
}

func TestSplitText_FallsBackToSentenceBoundary(t *testing.T) {
	text := strings.Repeat("a", 80) + ". " + strings.Repeat("b", 120)
	chunks := SplitText(text, 150)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ". ") {
		t.Fatalf("first chunk should end at the sentence boundary: %q", chunks[0])
	}
}

func TestSplitText_HardCutWithoutBoundaries(t *testing.T) {
	text := strings.Repeat("x", 9000)
	chunks := SplitText(text, 4000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for 9000 chars at 4000, got %d", len(chunks))
	}
	if len(chunks[0]) != 4000 || len(chunks[1]) != 4000 || len(chunks[2]) != 1000 {
		t.Fatalf("unexpected chunk sizes: %d %d %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestSplitText_MultibyteRunes(t *testing.T) {
	text := strings.Repeat("日本語のテキストです。", 100)
	chunks := SplitText(text, 250)
	if got := strings.Join(chunks, ""); got != text {
		t.Fatalf("multibyte input not reconstructed")
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 250 {
			t.Fatalf("chunk %d exceeds the rune limit: %d", i, n)
		}
	}
}

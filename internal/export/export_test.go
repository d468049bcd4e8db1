package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"cardforge/internal/models"
)

func sampleCards() []models.Flashcard {
	return []models.Flashcard{
		{
			Question:      "What is the capital of France?",
			CorrectAnswer: "Paris",
			Options:       []string{"Paris", "Lyon", "Nice", "Lille"},
			Position:      0,
		},
		{
			Question:      "Comma, quoted \"question\"",
			CorrectAnswer: "B",
			Options:       []string{"A", "B", "C", "D"},
			Position:      1,
		},
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatJSON {
		t.Fatalf("empty format should default to json, got %v %v", f, err)
	}
	if f, err := ParseFormat("ANKI"); err != nil || f != FormatAnki {
		t.Fatalf("format parsing should be case-insensitive, got %v %v", f, err)
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestWriteCSV_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, sampleCards()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "question" {
		t.Fatalf("missing header: %v", rows[0])
	}
	if rows[2][0] != "Comma, quoted \"question\"" {
		t.Fatalf("csv quoting broke the question: %q", rows[2][0])
	}
	if rows[1][1] != "Paris" {
		t.Fatalf("unexpected answer column: %v", rows[1])
	}
}

func TestWriteJSON_EmptyDeckIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, nil); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("empty deck should serialize as [], got %q", got)
	}
}

func TestWriteAnki_NoHeaderFrontBack(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatAnki, sampleCards()); err != nil {
		t.Fatalf("write anki: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back anki csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("anki export must not have a header, got %d rows", len(rows))
	}
	if rows[0][0] != "What is the capital of France?" {
		t.Fatalf("unexpected front: %q", rows[0][0])
	}
	if !strings.Contains(rows[0][1], "Paris") || !strings.Contains(rows[0][1], "Options:") {
		t.Fatalf("back should carry answer and options: %q", rows[0][1])
	}
}

func TestFilename(t *testing.T) {
	if got := FormatCSV.Filename("My Biology Notes!"); got != "my-biology-notes.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
	if got := FormatAnki.Filename(""); got != "flashcards-anki.csv" {
		t.Fatalf("unexpected fallback filename: %q", got)
	}
}

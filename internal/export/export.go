package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cardforge/internal/models"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatAnki Format = "anki"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "anki":
		return FormatAnki, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv"
	}
}

func (f Format) Filename(collection string) string {
	base := slugify(collection)
	if base == "" {
		base = "flashcards"
	}
	switch f {
	case FormatJSON:
		return base + ".json"
	case FormatAnki:
		return base + "-anki.csv"
	default:
		return base + ".csv"
	}
}

// Write renders the deck in the requested format, in stored card order.
func Write(w io.Writer, f Format, cards []models.Flashcard) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, cards)
	case FormatCSV:
		return writeCSV(w, cards)
	case FormatAnki:
		return writeAnkiCSV(w, cards)
	default:
		return fmt.Errorf("unsupported export format: %s", f)
	}
}

func writeJSON(w io.Writer, cards []models.Flashcard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if cards == nil {
		cards = []models.Flashcard{}
	}
	return enc.Encode(cards)
}

func writeCSV(w io.Writer, cards []models.Flashcard) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"question", "correct_answer", "option_1", "option_2", "option_3", "option_4"}); err != nil {
		return err
	}
	for _, c := range cards {
		row := []string{c.Question, c.CorrectAnswer}
		for i := 0; i < 4; i++ {
			if i < len(c.Options) {
				row = append(row, c.Options[i])
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeAnkiCSV emits front/back pairs without a header row, which is what
// Anki's plain-text importer expects. The distractors go on the back below
// the answer so nothing is lost on import.
func writeAnkiCSV(w io.Writer, cards []models.Flashcard) error {
	cw := csv.NewWriter(w)
	for _, c := range cards {
		back := c.CorrectAnswer
		if len(c.Options) > 0 {
			back = c.CorrectAnswer + "\nOptions: " + strings.Join(c.Options, " | ")
		}
		if err := cw.Write([]string{c.Question, back}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

package extract

import (
	"bytes"
	"fmt"
	"strings"

	"cardforge/internal/util"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDoc  = "application/msword"
	MediaTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Extract converts an uploaded document's raw bytes into plain text. Pages of
// a PDF are separated by a blank line; Word paragraphs keep document order.
// The result may still be whitespace-only; callers decide whether that counts
// as unusable input.
func Extract(buf []byte, mediaType string) (string, error) {
	switch mediaType {
	case MediaTypePDF:
		return extractPDF(buf)
	case MediaTypeDoc, MediaTypeDocx:
		return extractWord(buf)
	default:
		return "", fmt.Errorf("%w: %s", util.ErrUnsupportedMediaType, mediaType)
	}
}

func extractPDF(buf []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", i, err)
		}
		if t := joinFragments(text); t != "" {
			pages = append(pages, t)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

func extractWord(buf []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return "", fmt.Errorf("parse word document: %w", err)
	}
	defer r.Close()
	return wordParagraphText(r.Editable().GetContent()), nil
}

// joinFragments collapses the extractor's intra-page text runs into
// single-space-separated prose.
func joinFragments(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var xmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// wordParagraphText walks the document.xml body paragraph by paragraph and
// pulls the text runs out of each one.
func wordParagraphText(content string) string {
	paragraphs := strings.Split(content, "</w:p>")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		var b strings.Builder
		rest := p
		for {
			start := strings.Index(rest, "<w:t")
			if start < 0 {
				break
			}
			rest = rest[start+len("<w:t"):]
			open := strings.Index(rest, ">")
			if open < 0 {
				break
			}
			rest = rest[open+1:]
			end := strings.Index(rest, "</w:t>")
			if end < 0 {
				break
			}
			b.WriteString(xmlEntities.Replace(rest[:end]))
			rest = rest[end+len("</w:t>"):]
		}
		if line := strings.TrimSpace(b.String()); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

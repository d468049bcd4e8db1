package prompts

import (
	"strings"
	"testing"
)

func TestBuildFlashcardPrompt_DefaultOptions(t *testing.T) {
	p := BuildFlashcardPrompt(DefaultOptions())
	for _, want := range []string{
		`"flashcards"`,
		`"correctAnswer"`,
		"exactly 4 options",
		"term and definition",
		"conceptual questions",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestBuildFlashcardPrompt_FlagsToggleClauses(t *testing.T) {
	opts := Options{GenerateDefinitions: false, GenerateConcepts: false, IncludeMultipleChoice: true}
	p := BuildFlashcardPrompt(opts)
	if strings.Contains(p, "term and definition") {
		t.Fatalf("definitions clause should be absent")
	}
	if strings.Contains(p, "conceptual questions") {
		t.Fatalf("concepts clause should be absent")
	}
}

func TestBuildFlashcardPrompt_AlwaysDemandsOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeMultipleChoice = false
	p := BuildFlashcardPrompt(opts)
	// The schema is fixed regardless of study mode; only the framing changes.
	if !strings.Contains(p, "exactly 4 options") {
		t.Fatalf("schema requirement must survive disabled multiple choice")
	}
	if !strings.Contains(p, "direct-answer") {
		t.Fatalf("direct-answer framing missing:\n%s", p)
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	final := BuildSummaryPrompt(FinalSummaryWordLimit, false)
	if !strings.Contains(final, "the full document") || !strings.Contains(final, "500 words") {
		t.Fatalf("unexpected final prompt:\n%s", final)
	}
	partial := BuildSummaryPrompt(PartialSummaryWordLimit, true)
	if !strings.Contains(partial, "one section of a larger document") || !strings.Contains(partial, "250 words") {
		t.Fatalf("unexpected partial prompt:\n%s", partial)
	}
	if !strings.Contains(partial, `{"summary": "string"}`) {
		t.Fatalf("summary schema missing:\n%s", partial)
	}
}

func TestBuildSummaryPrompt_DefaultsWordLimit(t *testing.T) {
	p := BuildSummaryPrompt(0, false)
	if !strings.Contains(p, "500 words") {
		t.Fatalf("zero word limit should fall back to the final ceiling:\n%s", p)
	}
}

package prompts

import (
	"fmt"
	"strings"
)

const (
	FinalSummaryWordLimit   = 500
	PartialSummaryWordLimit = 250
)

// Options are the recognized generation flags. All default to true.
type Options struct {
	GenerateDefinitions   bool `json:"generate_definitions"`
	GenerateConcepts      bool `json:"generate_concepts"`
	IncludeMultipleChoice bool `json:"include_multiple_choice"`
}

func DefaultOptions() Options {
	return Options{
		GenerateDefinitions:   true,
		GenerateConcepts:      true,
		IncludeMultipleChoice: true,
	}
}

const flashcardPromptBase = `You are a flashcard generator for study material.
Create multiple-choice flashcards covering the key facts of the input text.

Output STRICT JSON with this schema:
{
  "flashcards": [
    {
      "question": "string",
      "correctAnswer": "string",
      "options": ["string", "string", "string", "string"]
    }
  ]
}

Rules:
- Every flashcard has exactly 4 options.
- The correct answer must appear both in "correctAnswer" and in "options".
- The three remaining options are plausible but wrong.
- Questions must be answerable from the input text alone.
- If the text contains nothing worth asking, return {"flashcards":[]}.`

// BuildFlashcardPrompt renders the system instruction for flashcard
// generation. The prompt depends only on the options, never on the chunk, so
// one invocation builds it once.
func BuildFlashcardPrompt(opts Options) string {
	b := strings.Builder{}
	b.WriteString(flashcardPromptBase)
	if opts.GenerateDefinitions {
		b.WriteString("\n- Emphasize term and definition questions where the text defines terms.")
	}
	if opts.GenerateConcepts {
		b.WriteString("\n- Emphasize conceptual questions that test understanding, not just recall.")
	}
	if !opts.IncludeMultipleChoice {
		b.WriteString("\n- The cards will be studied as direct-answer prompts; still emit the 4 options exactly as specified above.")
	}
	return b.String()
}

// BuildSummaryPrompt renders the system instruction for summarization.
// Partial prompts cover one section of a larger document and carry the
// tighter word ceiling.
func BuildSummaryPrompt(wordLimit int, partial bool) string {
	if wordLimit <= 0 {
		wordLimit = FinalSummaryWordLimit
	}
	scope := "the full document"
	if partial {
		scope = "one section of a larger document"
	}
	return fmt.Sprintf(`You are a study summarizer. The input text is %s.
Write a clear, factual summary of at most %d words.

Output STRICT JSON with this schema:
{"summary": "string"}

Rules:
- Stay within the word limit.
- Preserve the source terminology.
- Do not add information that is not in the input text.`, scope, wordLimit)
}

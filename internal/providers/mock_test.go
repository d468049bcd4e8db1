package providers

import (
	"context"
	"encoding/json"
	"testing"
)

func TestMockProvider_FlashcardPayload(t *testing.T) {
	p := NewMockProvider()
	resp, info, err := p.Generate(context.Background(), GenerateRequest{
		Operation:  "flashcards",
		Input:      "The mitochondria is the powerhouse of the cell.",
		Structured: true,
	})
	if err != nil {
		t.Fatalf("mock generate: %v", err)
	}
	if info.Name != "mock" {
		t.Fatalf("unexpected provider info: %+v", info)
	}
	var parsed struct {
		Flashcards []struct {
			Question      string   `json:"question"`
			CorrectAnswer string   `json:"correctAnswer"`
			Options       []string `json:"options"`
		} `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &parsed); err != nil {
		t.Fatalf("mock output not valid JSON: %v", err)
	}
	if len(parsed.Flashcards) == 0 {
		t.Fatalf("mock output has no flashcards")
	}
	for _, c := range parsed.Flashcards {
		if len(c.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(c.Options))
		}
		found := false
		for _, o := range c.Options {
			if o == c.CorrectAnswer {
				found = true
			}
		}
		if !found {
			t.Fatalf("correct answer %q not among options", c.CorrectAnswer)
		}
	}
}

func TestMockProvider_SummaryPayload(t *testing.T) {
	p := NewMockProvider()
	resp, _, err := p.Generate(context.Background(), GenerateRequest{
		Operation: "summarize",
		Input:     "Photosynthesis converts light energy into chemical energy.",
	})
	if err != nil {
		t.Fatalf("mock generate: %v", err)
	}
	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &parsed); err != nil {
		t.Fatalf("mock output not valid JSON: %v", err)
	}
	if parsed.Summary == "" {
		t.Fatalf("expected non-empty summary")
	}
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockProvider produces deterministic, schema-valid payloads so the whole
// pipeline runs without network access or keys.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Configured() bool {
	return true
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	op := strings.ToLower(req.Operation)
	switch {
	case strings.Contains(op, "summar"):
		return GenerateResponse{Text: mockSummaryJSON(req.Input)}, info, nil
	default:
		return GenerateResponse{Text: mockFlashcardJSON(req.Input)}, info, nil
	}
}

func mockFlashcardJSON(input string) string {
	topic := firstWords(input, 5)
	if topic == "" {
		topic = "the input text"
	}
	type card struct {
		Question      string   `json:"question"`
		CorrectAnswer string   `json:"correctAnswer"`
		Options       []string `json:"options"`
	}
	cards := make([]card, 0, 3)
	for i := 1; i <= 3; i++ {
		correct := fmt.Sprintf("Mock answer %d about %s", i, topic)
		cards = append(cards, card{
			Question:      fmt.Sprintf("Mock question %d about %s?", i, topic),
			CorrectAnswer: correct,
			Options: []string{
				correct,
				fmt.Sprintf("Mock distractor %d-a", i),
				fmt.Sprintf("Mock distractor %d-b", i),
				fmt.Sprintf("Mock distractor %d-c", i),
			},
		})
	}
	out, _ := json.Marshal(map[string]any{"flashcards": cards})
	return string(out)
}

func mockSummaryJSON(input string) string {
	snippet := firstWords(input, 40)
	if snippet == "" {
		snippet = "the input text"
	}
	out, _ := json.Marshal(map[string]string{
		"summary": "Mock summary of: " + snippet,
	})
	return string(out)
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

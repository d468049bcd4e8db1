package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"cardforge/internal/prompts"
	"cardforge/internal/providers"
)

// Client wraps one LLM provider with the parsing and validation every
// generation call needs. It holds no global state; construct one per
// component and inject it.
type Client struct {
	provider providers.LLMProvider
	log      zerolog.Logger
}

func NewClient(provider providers.LLMProvider, log zerolog.Logger) *Client {
	return &Client{provider: provider, log: log}
}

// GenerateFlashcards runs one chunk through the provider and returns the
// validated candidates. An empty candidate list is a valid outcome: some
// chunks contain nothing worth asking.
func (c *Client) GenerateFlashcards(ctx context.Context, chunk string, opts prompts.Options) ([]Candidate, error) {
	if !c.provider.Configured() {
		return nil, Failf(KindConfiguration, "llm provider is not configured")
	}
	resp, info, err := c.provider.Generate(ctx, providers.GenerateRequest{
		Operation:  "flashcards",
		System:     prompts.BuildFlashcardPrompt(opts),
		Input:      chunk,
		Structured: true,
	})
	if err != nil {
		return nil, fromProviderError(err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return nil, Failf(KindEmptyResponse, "provider %s returned no content", info.Name)
	}
	raw := extractJSON(resp.Text)
	if raw == "" {
		c.log.Debug().Str("provider", info.Name).Str("body", truncateForLog(resp.Text)).Msg("no json object in flashcard response")
		return nil, Failf(KindMalformedResponse, "no json object in response from %s", info.Name)
	}
	var payload flashcardPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		c.log.Debug().Str("provider", info.Name).Str("body", truncateForLog(resp.Text)).Msg("unparseable flashcard response")
		return nil, Failf(KindMalformedResponse, "decode flashcard response from %s: %v", info.Name, err)
	}
	for i, card := range payload.Flashcards {
		if err := validateCandidate(card); err != nil {
			return nil, Failf(KindMalformedResponse, "flashcard %d from %s: %v", i, info.Name, err)
		}
	}
	return payload.Flashcards, nil
}

// Summarize runs one text through the provider and returns the summary body.
func (c *Client) Summarize(ctx context.Context, text string, wordLimit int, partial bool) (string, error) {
	if !c.provider.Configured() {
		return "", Failf(KindConfiguration, "llm provider is not configured")
	}
	resp, info, err := c.provider.Generate(ctx, providers.GenerateRequest{
		Operation:  "summarize",
		System:     prompts.BuildSummaryPrompt(wordLimit, partial),
		Input:      text,
		Structured: true,
	})
	if err != nil {
		return "", fromProviderError(err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", Failf(KindEmptyResponse, "provider %s returned no content", info.Name)
	}
	raw := extractJSON(resp.Text)
	if raw == "" {
		c.log.Debug().Str("provider", info.Name).Str("body", truncateForLog(resp.Text)).Msg("no json object in summary response")
		return "", Failf(KindMalformedResponse, "no json object in response from %s", info.Name)
	}
	var payload summaryPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		c.log.Debug().Str("provider", info.Name).Str("body", truncateForLog(resp.Text)).Msg("unparseable summary response")
		return "", Failf(KindMalformedResponse, "decode summary response from %s: %v", info.Name, err)
	}
	summary := strings.TrimSpace(payload.Summary)
	if summary == "" {
		return "", Failf(KindEmptyResponse, "provider %s returned an empty summary", info.Name)
	}
	return summary, nil
}

func validateCandidate(c Candidate) error {
	if strings.TrimSpace(c.Question) == "" {
		return errors.New("empty question")
	}
	if strings.TrimSpace(c.CorrectAnswer) == "" {
		return errors.New("empty correct answer")
	}
	if len(c.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(c.Options))
	}
	for _, o := range c.Options {
		if o == c.CorrectAnswer {
			return nil
		}
	}
	return errors.New("correct answer not among options")
}

// extractJSON strips markdown code fences and any prose around the outermost
// JSON object. Models fence their output even when told not to.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}

func truncateForLog(s string) string {
	const max = 300
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

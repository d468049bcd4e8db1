package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"cardforge/internal/providers"
)

func TestSummarize_SingleChunkDirect(t *testing.T) {
	p := &fakeProvider{respond: func(providers.GenerateRequest) (string, error) {
		return `{"summary":"Direct summary."}`, nil
	}}
	r := NewReducer(newTestClient(p), 6000, zerolog.Nop())
	got, err := r.Summarize(context.Background(), "short document text")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got != "Direct summary." {
		t.Fatalf("unexpected summary: %q", got)
	}
	reqs := p.requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(reqs))
	}
	if !strings.Contains(reqs[0].System, "the full document") {
		t.Fatalf("single-chunk summary must use the final prompt: %s", reqs[0].System)
	}
}

func TestSummarize_TwoPassOverLongText(t *testing.T) {
	var text strings.Builder
	for i := 0; i < 3; i++ {
		text.WriteString(fmt.Sprintf("S%d", i))
		text.WriteString(strings.Repeat("y", 5996))
		text.WriteString(". ")
	}

	p := &fakeProvider{respond: func(req providers.GenerateRequest) (string, error) {
		if strings.Contains(req.System, "one section of a larger document") {
			return fmt.Sprintf(`{"summary":"partial %s"}`, req.Input[:2]), nil
		}
		return `{"summary":"final summary"}`, nil
	}}
	r := NewReducer(newTestClient(p), 6000, zerolog.Nop())
	got, err := r.Summarize(context.Background(), text.String())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got != "final summary" {
		t.Fatalf("unexpected summary: %q", got)
	}

	reqs := p.requests()
	if len(reqs) != 4 {
		t.Fatalf("expected 3 partial calls plus 1 final, got %d", len(reqs))
	}
	final := reqs[len(reqs)-1]
	if strings.Contains(final.System, "one section of a larger document") {
		t.Fatalf("last call should be the final pass")
	}
	for i := 0; i < 3; i++ {
		if !strings.Contains(final.Input, fmt.Sprintf("partial S%d", i)) {
			t.Fatalf("final input missing partial %d: %s", i, final.Input)
		}
	}
}

func TestSummarize_PartialFailureFailsSummary(t *testing.T) {
	text := strings.Repeat("a", 6000) + strings.Repeat("b", 6000) + strings.Repeat("c", 1000)
	p := &fakeProvider{respond: func(req providers.GenerateRequest) (string, error) {
		if strings.HasPrefix(req.Input, "b") {
			return "", errors.New("upstream exploded")
		}
		return `{"summary":"fine"}`, nil
	}}
	r := NewReducer(newTestClient(p), 6000, zerolog.Nop())
	if _, err := r.Summarize(context.Background(), text); err == nil {
		t.Fatalf("expected failure when a partial fails")
	}
}

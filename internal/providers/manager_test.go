package providers

import (
	"testing"

	"cardforge/internal/config"
)

func TestNewManager_EmptyListFallsBackToMock(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: ""})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	refs := m.LLMProviderRefs()
	if len(refs) != 1 || refs[0].Name != "mock" {
		t.Fatalf("expected single mock ref, got %+v", refs)
	}
}

func TestActiveLLMProvider_RealProviderBeatsMock(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock|ollama"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	_, ref := m.ActiveLLMProvider()
	if ref.Name != "ollama" {
		t.Fatalf("expected ollama to win over mock, got %s", ref.Name)
	}
}

func TestActiveLLMProvider_UnconfiguredRealFallsBackToMock(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CARDFORGE_OPENAI_KEY_STUDY", "")
	m, err := NewManager(config.Config{LLMProviders: "openai:study|mock"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	_, ref := m.ActiveLLMProvider()
	if ref.Name != "mock" {
		t.Fatalf("expected fallback to mock, got %s", ref.Name)
	}
}

func TestPreferredLLMOrder_MockSortsLast(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock|openai|groq"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	got := m.PreferredLLMOrder()
	want := []int{1, 2, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestFindLLMProviderByName(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "openai|mock"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if _, ref, ok := m.FindLLMProviderByName("OpenAI"); !ok || ref.Name != "openai" {
		t.Fatalf("lookup should be case-insensitive, got %+v ok=%v", ref, ok)
	}
	if _, _, ok := m.FindLLMProviderByName("gemini"); ok {
		t.Fatalf("unknown provider must not resolve")
	}
}

func TestLLMProviderByIndex_OutOfRangeUsesHead(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock|openai"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if n := m.LLMCount(); n != 2 {
		t.Fatalf("expected 2 providers, got %d", n)
	}
	if _, ref := m.LLMProviderByIndex(99); ref.Name != "mock" {
		t.Fatalf("out-of-range index should clamp to the head, got %s", ref.Name)
	}
}

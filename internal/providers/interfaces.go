package providers

import "context"

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Key   string `json:"key"`
}

// GenerateRequest carries one upstream call: System is the instruction
// prompt, Input is the chunk text. Structured forces a JSON-object response
// from providers that support constrained output.
type GenerateRequest struct {
	Operation  string `json:"operation"`
	System     string `json:"system"`
	Input      string `json:"input"`
	Structured bool   `json:"structured"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

type LLMProvider interface {
	// Configured reports whether the provider holds the credential it needs.
	// Callers check this before issuing any upstream call.
	Configured() bool
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error)
}

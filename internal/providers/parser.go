package providers

import "strings"

// ProviderRef is one parsed entry of the CARDFORGE_LLM_PROVIDERS list.
// KeyAlias selects which CARDFORGE_<PROVIDER>_KEY_<ALIAS> variable holds the
// credential; without one the provider falls back to its standard env var.
type ProviderRef struct {
	Raw      string
	Name     string
	KeyAlias string
}

// ParseProviderList parses a |-separated provider list, each entry "name" or
// "name:keyalias" (e.g. "openai:study|mock"). An empty list yields the mock
// provider so the pipeline stays runnable without credentials.
func ParseProviderList(raw string) []ProviderRef {
	parts := strings.Split(raw, "|")
	out := make([]ProviderRef, 0, len(parts))
	for _, entry := range parts {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ref := ProviderRef{Raw: entry}
		if name, alias, found := strings.Cut(entry, ":"); found {
			ref.Name = strings.TrimSpace(name)
			ref.KeyAlias = strings.TrimSpace(alias)
		} else {
			ref.Name = entry
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		out = append(out, ProviderRef{Raw: "mock", Name: "mock"})
	}
	return out
}

package llm

// modelAliases maps short names accepted in configuration to provider
// model IDs. Names not listed are sent to the provider unchanged.
var modelAliases = map[string]map[string]string{
	ProviderAnthropic: {
		"claude-haiku":  "claude-haiku-4-5-20251001",
		"claude-sonnet": "claude-sonnet-4-5-20250929",
		"claude-opus":   "claude-opus-4-1-20250805",
	},
	ProviderOpenAI: {
		"gpt4":  "gpt-4",
		"gpt-4": "gpt-4",
		"4o":    "gpt-4o",
		"mini":  "gpt-4o-mini",
	},
	ProviderGemini: {
		"gemini-flash": "gemini-2.5-flash",
		"gemini-pro":   "gemini-2.5-pro",
	},
}

func resolveModel(provider, name string) string {
	if id, ok := modelAliases[provider][name]; ok {
		return id
	}
	return name
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenAIProvider calls an OpenAI-compatible chat completions API. The same
// type serves OpenAI itself and OpenRouter.
type OpenAIProvider struct {
	name   string
	client *openai.Client
	model  string
}

// NewOpenAIProvider builds a provider for the OpenAI API, or a compatible
// one when cfg.BaseURL is set. Short model names are resolved.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	return newChatProvider(ProviderOpenAI, cfg.APIKey, cfg.BaseURL, resolveModel(ProviderOpenAI, cfg.Model))
}

// NewOpenRouterProvider builds a provider for OpenRouter. Model IDs
// ("vendor/model") are used as given.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	return newChatProvider(ProviderOpenRouter, cfg.APIKey, baseURL, cfg.Model)
}

func newChatProvider(name, apiKey, baseURL, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingCredential)
	}
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	return &OpenAIProvider{
		name:   name,
		client: openai.NewClientWithConfig(conf),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	body, err := p.chatRequest(req)
	if err != nil {
		return nil, err
	}
	out, err := p.client.CreateChatCompletion(ctx, body)
	if err != nil {
		return nil, p.mapError(err)
	}
	if len(out.Choices) == 0 {
		return nil, &ErrEmptyResponse{Provider: p.name}
	}

	first := out.Choices[0]
	resp := &Response{
		Content:    json.RawMessage(first.Message.Content),
		Model:      out.Model,
		StopReason: StopEnd,
		Usage:      Usage{out.Usage.PromptTokens, out.Usage.CompletionTokens, out.Usage.TotalTokens},
	}
	if first.FinishReason == openai.FinishReasonLength {
		resp.StopReason = StopMaxTokens
	}
	if err := complete(req, resp.Content, resp.StopReason); err != nil {
		return nil, err
	}
	return resp, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func chatRole(r Role) string {
	if r == RoleAssistant {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}

func (p *OpenAIProvider) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: chatRole(m.Role), Content: m.Content})
	}
	body := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}
	if req.Schema == nil {
		return body, nil
	}

	raw, err := json.Marshal(req.Schema.Definition)
	if err != nil {
		return body, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
	}
	body.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   req.Schema.Name,
			Schema: json.RawMessage(raw),
			Strict: true,
		},
	}
	return body, nil
}

func (p *OpenAIProvider) mapError(err error) error {
	if isContextErr(err) {
		return err
	}
	if e := (*openai.APIError)(nil); errors.As(err, &e) {
		return classifyStatus(p.name, e.HTTPStatusCode, 0, err)
	}
	if e := (*openai.RequestError)(nil); errors.As(err, &e) {
		return classifyStatus(p.name, e.HTTPStatusCode, 0, err)
	}
	return &ErrProviderUnavailable{Err: err}
}

// Package openai provides an OpenAI-compatible LLM provider implementation.
//
// The provider issues single request/response exchanges against a
// chat-completions endpoint. It works with any OpenAI-compatible API by
// setting a custom base URL.
//
// Example usage:
//
//	provider := openai.NewProvider(
//	    os.Getenv("OPENAI_API_KEY"),
//	    openai.WithModel("gpt-4o"),
//	)
//
//	msg, err := provider.Complete(context.Background(), []*llm.Message{
//	    llm.NewUserMessage("Hello!"),
//	})
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/notegarden/notegarden/pkg/llm"
	"github.com/openai/openai-go"
)

const (
	// DefaultBaseURL is the default OpenAI API base URL
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o"
)

// Provider implements the llm.Provider interface for OpenAI-compatible APIs.
type Provider struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature *float64
	maxTokens   *int
}

// ProviderOption is a function that configures a Provider.
type ProviderOption func(*Provider)

// WithModel sets the model to use for completions.
func WithModel(model string) ProviderOption {
	return func(p *Provider) {
		p.model = model
	}
}

// WithBaseURL sets a custom base URL for OpenAI-compatible APIs.
// This enables using Azure OpenAI, local models, or other compatible services.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) {
		p.baseURL = baseURL
	}
}

// WithTemperature sets the sampling temperature sent with each request.
func WithTemperature(temperature float64) ProviderOption {
	return func(p *Provider) {
		p.temperature = &temperature
	}
}

// WithMaxTokens caps the number of tokens the model may generate per call.
func WithMaxTokens(maxTokens int) ProviderOption {
	return func(p *Provider) {
		p.maxTokens = &maxTokens
	}
}

// NewProvider creates a new OpenAI provider with the given API key.
//
// If apiKey is empty, it will attempt to read from the OPENAI_API_KEY
// environment variable. An empty key is not an error at construction
// time: the enrichment and knowledge layers check GetAPIKey before
// issuing any request, so a missing credential disables those features
// without crashing the application.
//
// If baseURL is not provided via WithBaseURL, the OPENAI_BASE_URL
// environment variable is consulted before falling back to the default.
func NewProvider(apiKey string, opts ...ProviderOption) *Provider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	p := &Provider{
		model:      DefaultModel,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(p)
	}

	// If baseURL wasn't set by options, check environment variable
	if p.baseURL == DefaultBaseURL {
		if envBaseURL := os.Getenv("OPENAI_BASE_URL"); envBaseURL != "" {
			p.baseURL = envBaseURL
		}
	}

	return p
}

// completionResponse mirrors the subset of the chat-completions response
// the provider consumes. Content is a pointer so that a missing or null
// field is distinguishable from an empty string.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content   *string           `json:"content"`
			ToolCalls []toolCallPayload `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// toolCallPayload is one raw tool-call entry from the endpoint. Arguments
// arrive as JSON-encoded text, not structured data.
type toolCallPayload struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// Complete sends messages to the endpoint and returns the first choice's
// message content.
func (p *Provider) Complete(ctx context.Context, messages []*llm.Message) (*llm.Message, error) {
	body := p.requestBody(messages)

	resp, err := p.send(ctx, body)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return nil, fmt.Errorf("%w: missing choices[0].message.content", llm.ErrResponseShape)
	}

	return llm.NewAssistantMessage(*resp.Choices[0].Message.Content), nil
}

// CompleteWithTools sends messages along with a tool catalog and
// tool_choice "auto", and parses the model's selected tool invocations.
func (p *Provider) CompleteWithTools(ctx context.Context, messages []*llm.Message, tools []llm.ToolDefinition) (*llm.ToolCallResult, error) {
	body := p.requestBody(messages)
	body["tools"] = convertToOpenAITools(tools)
	body["tool_choice"] = "auto"

	resp, err := p.send(ctx, body)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: missing choices", llm.ErrResponseShape)
	}

	result := &llm.ToolCallResult{}
	for _, raw := range resp.Choices[0].Message.ToolCalls {
		args := make(map[string]any)
		if err := json.Unmarshal([]byte(raw.Function.Arguments), &args); err != nil {
			result.Dropped = append(result.Dropped, &llm.ArgumentParseError{
				ID:   raw.ID,
				Name: raw.Function.Name,
				Err:  err,
			})
			continue
		}
		result.Invocations = append(result.Invocations, llm.ToolInvocation{
			ID:        raw.ID,
			Name:      raw.Function.Name,
			Arguments: args,
		})
	}

	return result, nil
}

// requestBody builds the common chat-completions request payload.
func (p *Provider) requestBody(messages []*llm.Message) map[string]any {
	body := map[string]any{
		"model":    p.model,
		"messages": convertToOpenAIMessages(messages),
	}
	if p.temperature != nil {
		body["temperature"] = *p.temperature
	}
	if p.maxTokens != nil {
		body["max_tokens"] = *p.maxTokens
	}
	return body
}

// send performs the HTTP exchange and decodes the response defensively.
func (p *Provider) send(ctx context.Context, body map[string]any) (*completionResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("%w: status %d (failed to read error body: %v)", llm.ErrNetwork, resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("%w: status %d: %s", llm.ErrNetwork, resp.StatusCode, string(errBody))
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrResponseShape, err)
	}

	return &decoded, nil
}

// GetModel returns the model name being used.
func (p *Provider) GetModel() string {
	return p.model
}

// GetBaseURL returns the base URL being used.
func (p *Provider) GetBaseURL() string {
	return p.baseURL
}

// GetAPIKey returns the API key being used.
func (p *Provider) GetAPIKey() string {
	return p.apiKey
}

// convertToOpenAIMessages converts our Message format to OpenAI's
// ChatCompletionMessageParamUnion format.
func convertToOpenAIMessages(messages []*llm.Message) []openai.ChatCompletionMessageParamUnion {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			openaiMessages = append(openaiMessages, openai.SystemMessage(msg.Content))
		case llm.RoleUser:
			openaiMessages = append(openaiMessages, openai.UserMessage(msg.Content))
		case llm.RoleAssistant:
			openaiMessages = append(openaiMessages, openai.AssistantMessage(msg.Content))
		default:
			// Default to user message for unknown roles
			openaiMessages = append(openaiMessages, openai.UserMessage(msg.Content))
		}
	}

	return openaiMessages
}

// convertToOpenAITools converts tool definitions to the wire format the
// chat-completions endpoint expects.
func convertToOpenAITools(tools []llm.ToolDefinition) []map[string]any {
	payload := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		payload = append(payload, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        t.Name,
				"description": t.Description,
				"parameters":  t.Schema,
			},
		})
	}
	return payload
}

// Package llm provides abstractions for LLM provider integration.
//
// Providers handle API communication with chat-completion services and
// return plain messages or parsed tool invocations. This design keeps
// providers focused on LLM concerns without coupling them to note
// semantics or UI orchestration.
//
// The enrichment and knowledge layers are responsible for:
// - Checking preconditions (content, credential) before calling a provider
// - Interpreting completions (tag/summary parsing, tool dispatch)
// - Managing note state and session lifecycles
//
// This separation allows providers to be:
// - Reusable outside the note app (batch scripts, experiments)
// - Testable independently with an httptest server or a fake
// - Simpler to implement and maintain
package llm

import "context"

// Provider defines the interface for chat-completion integrations.
//
// Both methods issue exactly one request/response exchange. Providers do
// not retry and do not enforce a timeout of their own; cancellation and
// deadline policy belong to the caller via ctx.
type Provider interface {
	// Complete sends messages to the LLM and returns the full response
	// message.
	//
	// Returns ErrNetwork (wrapped) on transport failure and
	// ErrResponseShape (wrapped) when the endpoint responds without the
	// expected choices[0].message.content structure.
	Complete(ctx context.Context, messages []*Message) (*Message, error)

	// CompleteWithTools sends messages along with a tool catalog and
	// tool_choice "auto", and returns the invocations the model selected.
	//
	// An empty invocation list is a valid outcome, not an error: the
	// model chose not to call any tool. Individual tool-call entries with
	// malformed argument payloads are dropped and recorded on the result;
	// they never fail the batch.
	CompleteWithTools(ctx context.Context, messages []*Message, tools []ToolDefinition) (*ToolCallResult, error)

	// GetModel returns the model name being used.
	GetModel() string

	// GetBaseURL returns the base URL being used for API requests.
	GetBaseURL() string

	// GetAPIKey returns the API key being used for authentication.
	// Callers check this before issuing requests; an empty key means
	// generation features are disabled rather than failing in-flight.
	GetAPIKey() string
}

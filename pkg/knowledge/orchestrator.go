package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/notegarden/notegarden/pkg/llm"
	"github.com/notegarden/notegarden/pkg/logging"
)

// Capability names used for knowledge extraction. Only this subset of the
// catalog is offered to the model; anything else the service exposes is
// ignored for extraction sessions.
var extractionCapabilities = []string{
	"create_entities",
	"create_relations",
	"add_observations",
}

// extractionPromptName is the catalog prompt template used as the system
// prompt for extraction sessions.
const extractionPromptName = "knowledge_extraction"

var (
	// ErrEmptyContent indicates the note content was empty after
	// trimming. No session is opened.
	ErrEmptyContent = errors.New("knowledge: note content is empty")

	// ErrNoCredential indicates no completion credential is configured.
	// No session is opened.
	ErrNoCredential = errors.New("knowledge: no API credential configured")
)

// Outcome records the result of executing one tool invocation. Either
// Result or Err is set.
type Outcome struct {
	Invocation llm.ToolInvocation
	Result     string
	Err        error
}

// SessionReport aggregates a finished extraction session. Per-tool
// outcomes are diagnostics; the session-level result is independent of
// how many individual executions failed.
type SessionReport struct {
	// Invoked is the number of tool invocations the model requested.
	Invoked int

	// Skipped is the number of invocations that named no catalog tool.
	Skipped int

	// DroppedArguments is the number of entries dropped for malformed
	// argument payloads.
	DroppedArguments int

	// Outcomes holds one entry per executed invocation, in execution
	// order.
	Outcomes []Outcome
}

// Failed returns the number of executed invocations that errored.
func (r *SessionReport) Failed() int {
	count := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			count++
		}
	}
	return count
}

// Orchestrator resolves and executes the tool invocations a model
// selects for a piece of note content.
type Orchestrator struct {
	provider llm.Provider
	catalog  CatalogProvider
	logger   *logging.Logger
}

// NewOrchestrator creates an orchestrator. The catalog provider is fixed
// at construction; tests inject a fake.
func NewOrchestrator(provider llm.Provider, catalog CatalogProvider, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Orchestrator{
		provider: provider,
		catalog:  catalog,
		logger:   logger,
	}
}

// RunSession extracts structured knowledge from the given note content.
//
// The catalog session is always released, whatever the exit path: client
// failure, zero tool calls, or individual execution errors. Matched
// invocations execute sequentially in the order the model returned them;
// one failure never prevents the remaining invocations from running. The
// returned error is non-nil only for precondition or client-level
// failures, never for per-tool failures.
func (o *Orchestrator) RunSession(ctx context.Context, content string) (*SessionReport, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if o.provider.GetAPIKey() == "" {
		return nil, ErrNoCredential
	}

	session, err := o.catalog.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("knowledge: connect failed: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			o.logger.Warnf("session close failed: %v", closeErr)
		}
	}()

	catalog := selectExtractionTools(session.Tools())

	messages := make([]*llm.Message, 0, 2)
	if prompt, ok := session.Prompt(extractionPromptName); ok {
		messages = append(messages, llm.NewSystemMessage(prompt))
	} else {
		o.logger.Infof("prompt template %q not offered; proceeding without system prompt", extractionPromptName)
	}
	messages = append(messages, llm.NewUserMessage(content))

	result, err := o.provider.CompleteWithTools(ctx, messages, definitions(catalog))
	if err != nil {
		return nil, fmt.Errorf("knowledge: tool call request failed: %w", err)
	}

	for _, dropped := range result.Dropped {
		o.logger.Warnf("dropped tool call: %v", dropped)
	}

	report := &SessionReport{
		Invoked:          len(result.Invocations),
		DroppedArguments: len(result.Dropped),
	}

	for _, invocation := range result.Invocations {
		tool, ok := catalog[invocation.Name]
		if !ok {
			report.Skipped++
			o.logger.Infof("skipping invocation of unknown tool %q", invocation.Name)
			continue
		}

		outcome := Outcome{Invocation: invocation}
		outcome.Result, outcome.Err = tool.Execute(ctx, invocation.Arguments)
		if outcome.Err != nil {
			o.logger.Warnf("tool %s failed: %v", invocation.Name, outcome.Err)
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report, nil
}

// selectExtractionTools keeps the catalog subset relevant to knowledge
// extraction, indexed by name. An empty result is tolerated; the call
// proceeds with no tools and the model simply has nothing to invoke.
func selectExtractionTools(tools []CatalogTool) map[string]CatalogTool {
	wanted := make(map[string]struct{}, len(extractionCapabilities))
	for _, name := range extractionCapabilities {
		wanted[name] = struct{}{}
	}

	selected := make(map[string]CatalogTool)
	for _, tool := range tools {
		if _, ok := wanted[tool.Name()]; ok {
			selected[tool.Name()] = tool
		}
	}
	return selected
}

// definitions converts catalog tools to wire definitions, in the fixed
// capability order so requests are deterministic.
func definitions(catalog map[string]CatalogTool) []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(catalog))
	for _, name := range extractionCapabilities {
		tool, ok := catalog[name]
		if !ok {
			continue
		}
		defs = append(defs, llm.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Schema:      tool.Schema(),
		})
	}
	return defs
}

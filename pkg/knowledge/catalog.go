// Package knowledge runs knowledge-extraction sessions: a
// function-calling exchange against the completion provider, followed by
// sequential execution of the selected tool invocations against an
// external tool service.
package knowledge

import "context"

// CatalogProvider supplies tool catalogs for extraction sessions. It is
// injected into the orchestrator at construction time so sessions can run
// against a fake provider in tests.
type CatalogProvider interface {
	// Connect opens a session with the external tool service. The
	// returned session must be closed by the caller.
	Connect(ctx context.Context) (Session, error)
}

// Session is a live connection to the tool service, scoped to one
// extraction run.
type Session interface {
	// Tools returns the capabilities the service offers.
	Tools() []CatalogTool

	// Prompt returns the system prompt template with the given name.
	// The second return is false when the service has no such template.
	Prompt(name string) (string, bool)

	// Close releases the session. Callers must release on every exit
	// path, including failure.
	Close() error
}

// CatalogTool is one invocable capability from the catalog.
type CatalogTool interface {
	// Name returns the unique identifier the model uses to select the
	// tool.
	Name() string

	// Description returns a human-readable description of what this
	// tool does.
	Description() string

	// Schema returns the JSON schema for this tool's input parameters.
	Schema() map[string]any

	// Execute runs the tool with the given arguments and returns a
	// result string.
	Execute(ctx context.Context, args map[string]any) (string, error)
}

package llm

// ToolDefinition describes one callable capability offered to the model
// for a session. Definitions are immutable for the duration of a session.
type ToolDefinition struct {
	// Name is the unique identifier the model uses to select the tool.
	Name string

	// Description tells the model what the tool does.
	Description string

	// Schema is the JSON schema for the tool's arguments.
	Schema map[string]any
}

// ToolInvocation is one requested call extracted from a model response.
// Invocations are created by CompleteWithTools, consumed exactly once by
// the caller, then discarded.
type ToolInvocation struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// ToolCallResult is the outcome of a function-calling exchange.
type ToolCallResult struct {
	// Invocations are the well-formed tool calls, in the order the model
	// returned them. Empty means the model chose not to call any tool.
	Invocations []ToolInvocation

	// Dropped records entries whose argument payloads could not be
	// decoded. Diagnostics only; a dropped entry never aborts the batch.
	Dropped []*ArgumentParseError
}

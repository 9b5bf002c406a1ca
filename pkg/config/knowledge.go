package config

import (
	"sync"
)

const (
	// SectionIDKnowledge is the identifier for the knowledge extraction settings section
	SectionIDKnowledge = "knowledge"
)

// KnowledgeSection manages knowledge extraction server configuration.
// The server is an MCP server spawned over stdio; ServerCommand names the
// executable and ServerArgs its arguments.
type KnowledgeSection struct {
	ServerCommand string
	ServerArgs    []string
	ServerEnv     []string
	mu            sync.RWMutex
}

// NewKnowledgeSection creates a new knowledge section with default settings.
func NewKnowledgeSection() *KnowledgeSection {
	return &KnowledgeSection{
		ServerCommand: "",
		ServerArgs:    nil,
		ServerEnv:     nil,
	}
}

// ID returns the section identifier.
func (s *KnowledgeSection) ID() string {
	return SectionIDKnowledge
}

// Title returns the section title.
func (s *KnowledgeSection) Title() string {
	return "Knowledge Extraction"
}

// Description returns the section description.
func (s *KnowledgeSection) Description() string {
	return "Configure the MCP server used for knowledge graph extraction. server_command names the executable; server_args and server_env are optional. Extraction is disabled until a server command is set."
}

// Data returns the current configuration data.
func (s *KnowledgeSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"server_command": s.ServerCommand,
		"server_args":    toAnySlice(s.ServerArgs),
		"server_env":     toAnySlice(s.ServerEnv),
	}
}

// SetData updates the configuration from the provided data.
func (s *KnowledgeSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if command, ok := data["server_command"].(string); ok {
		s.ServerCommand = command
	}

	if args, ok := data["server_args"]; ok {
		s.ServerArgs = toStringSlice(args)
	}

	if env, ok := data["server_env"]; ok {
		s.ServerEnv = toStringSlice(env)
	}

	return nil
}

// Validate validates the current configuration.
func (s *KnowledgeSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Knowledge extraction is optional - validation always passes
	return nil
}

// Reset resets the section to default configuration.
func (s *KnowledgeSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ServerCommand = ""
	s.ServerArgs = nil
	s.ServerEnv = nil
}

// GetServerCommand returns the configured server command.
func (s *KnowledgeSection) GetServerCommand() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ServerCommand
}

// SetServerCommand sets the server command.
func (s *KnowledgeSection) SetServerCommand(command string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ServerCommand = command
}

// GetServerArgs returns the configured server arguments.
func (s *KnowledgeSection) GetServerArgs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	args := make([]string, len(s.ServerArgs))
	copy(args, s.ServerArgs)
	return args
}

// SetServerArgs sets the server arguments.
func (s *KnowledgeSection) SetServerArgs(args []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ServerArgs = args
}

// GetServerEnv returns the configured server environment variables.
func (s *KnowledgeSection) GetServerEnv() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	env := make([]string, len(s.ServerEnv))
	copy(env, s.ServerEnv)
	return env
}

// SetServerEnv sets the server environment variables.
func (s *KnowledgeSection) SetServerEnv(env []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ServerEnv = env
}

// toAnySlice converts a string slice for JSON-friendly section data.
func toAnySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

// toStringSlice converts section data back to a string slice. JSON decoding
// produces []any, so both representations are accepted.
func toStringSlice(value any) []string {
	switch typed := value.(type) {
	case []string:
		out := make([]string, len(typed))
		copy(out, typed)
		return out
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Package mcpcatalog implements the knowledge.CatalogProvider boundary
// over a Model Context Protocol server. The server process is spawned
// over stdio per session; tools and prompt templates are fetched once at
// connect time and held immutable for the session.
package mcpcatalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/notegarden/notegarden/pkg/knowledge"
	"github.com/notegarden/notegarden/pkg/logging"
)

// Provider spawns an MCP server and exposes its catalog.
type Provider struct {
	command string
	args    []string
	env     []string
	logger  *logging.Logger
}

// ProviderOption customizes a Provider.
type ProviderOption func(*Provider)

// WithEnv sets extra environment variables passed to the server process,
// in KEY=VALUE form.
func WithEnv(env []string) ProviderOption {
	return func(p *Provider) {
		p.env = env
	}
}

// NewProvider creates a provider that runs the given server command per
// session.
func NewProvider(command string, args []string, logger *logging.Logger, opts ...ProviderOption) *Provider {
	if logger == nil {
		logger = logging.Nop()
	}
	p := &Provider{
		command: command,
		args:    args,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Connect spawns the server, initializes the protocol, and loads the
// tool catalog and prompt templates. The returned session must be closed
// by the caller.
func (p *Provider) Connect(ctx context.Context) (knowledge.Session, error) {
	if p.command == "" {
		return nil, fmt.Errorf("mcpcatalog: no server command configured")
	}

	c, err := client.NewStdioMCPClient(p.command, p.env, p.args...)
	if err != nil {
		return nil, fmt.Errorf("mcpcatalog: start server: %w", err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "notegarden",
		Version: "0.1.0",
	}
	if _, err := c.Initialize(ctx, initRequest); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("mcpcatalog: initialize: %w", err)
	}

	s := &session{client: c, logger: p.logger, prompts: make(map[string]string)}

	toolsResult, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("mcpcatalog: list tools: %w", err)
	}
	for _, t := range toolsResult.Tools {
		s.tools = append(s.tools, &tool{client: c, def: t})
	}

	// Prompt support is optional on the server side; a failure here
	// leaves the session usable with an empty template set.
	if err := s.loadPrompts(ctx); err != nil {
		p.logger.Infof("prompts unavailable: %v", err)
	}

	return s, nil
}

// session is one live connection to the MCP server.
type session struct {
	client  *client.Client
	logger  *logging.Logger
	tools   []knowledge.CatalogTool
	prompts map[string]string
}

func (s *session) loadPrompts(ctx context.Context) error {
	listResult, err := s.client.ListPrompts(ctx, mcp.ListPromptsRequest{})
	if err != nil {
		return err
	}

	for _, prompt := range listResult.Prompts {
		getRequest := mcp.GetPromptRequest{}
		getRequest.Params.Name = prompt.Name
		result, err := s.client.GetPrompt(ctx, getRequest)
		if err != nil {
			s.logger.Warnf("get prompt %q: %v", prompt.Name, err)
			continue
		}
		if text := promptText(result); text != "" {
			s.prompts[prompt.Name] = text
		}
	}
	return nil
}

func (s *session) Tools() []knowledge.CatalogTool {
	return s.tools
}

func (s *session) Prompt(name string) (string, bool) {
	text, ok := s.prompts[name]
	return text, ok
}

func (s *session) Close() error {
	return s.client.Close()
}

// tool adapts one MCP tool to the catalog boundary.
type tool struct {
	client *client.Client
	def    mcp.Tool
}

func (t *tool) Name() string {
	return t.def.Name
}

func (t *tool) Description() string {
	return t.def.Description
}

func (t *tool) Schema() map[string]any {
	schema := map[string]any{
		"type": t.def.InputSchema.Type,
	}
	if t.def.InputSchema.Properties != nil {
		schema["properties"] = t.def.InputSchema.Properties
	}
	if len(t.def.InputSchema.Required) > 0 {
		schema["required"] = t.def.InputSchema.Required
	}
	return schema
}

func (t *tool) Execute(ctx context.Context, args map[string]any) (string, error) {
	request := mcp.CallToolRequest{}
	request.Params.Name = t.def.Name
	request.Params.Arguments = args

	result, err := t.client.CallTool(ctx, request)
	if err != nil {
		return "", fmt.Errorf("mcpcatalog: call %s: %w", t.def.Name, err)
	}

	text := contentText(result.Content)
	if result.IsError {
		return "", fmt.Errorf("mcpcatalog: %s reported an error: %s", t.def.Name, text)
	}
	return text, nil
}

// contentText flattens text content blocks into a single string.
func contentText(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		switch tc := c.(type) {
		case mcp.TextContent:
			parts = append(parts, tc.Text)
		case *mcp.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// promptText flattens a prompt's messages into one system prompt string.
func promptText(result *mcp.GetPromptResult) string {
	var parts []string
	for _, msg := range result.Messages {
		switch tc := msg.Content.(type) {
		case mcp.TextContent:
			parts = append(parts, tc.Text)
		case *mcp.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

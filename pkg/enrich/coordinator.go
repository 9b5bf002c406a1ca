package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/notegarden/notegarden/pkg/llm"
	"github.com/notegarden/notegarden/pkg/llm/tokenizer"
	"github.com/notegarden/notegarden/pkg/notes"
)

// systemPrompt instructs the model to answer in the two-line format
// ParseCompletion expects.
const systemPrompt = "你是一个笔记助手。请为用户提供的笔记内容生成标签和摘要，" +
	"严格按照以下两行格式输出，不要输出其他内容：\n" +
	"标签：标签1,标签2,标签3\n" +
	"摘要：一句话概括笔记内容"

// summarySeparator joins the generated summary and the original content.
const summarySeparator = "\n\n"

// DefaultPromptBudget caps the note tokens sent per enrichment request.
const DefaultPromptBudget = 4000

// Update carries the recomputed note fields back to the caller. The
// coordinator never persists; the surrounding collection applies the
// update.
type Update struct {
	Tags    []string
	Content string
}

// Coordinator owns the enrichment flow: precondition checks, the
// generation state machine, the completion call, parsing, and the merge
// into updated note fields.
type Coordinator struct {
	provider     llm.Provider
	tok          *tokenizer.Tokenizer
	promptBudget int
	guard        *sessionGuard
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithPromptBudget overrides the token budget applied to note content.
func WithPromptBudget(budget int) CoordinatorOption {
	return func(c *Coordinator) {
		c.promptBudget = budget
	}
}

// NewCoordinator creates a coordinator using the given provider.
func NewCoordinator(provider llm.Provider, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		provider:     provider,
		tok:          tokenizer.New(),
		promptBudget: DefaultPromptBudget,
		guard:        newSessionGuard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the generation state for a note session.
func (c *Coordinator) State(noteID string) GenerationState {
	return c.guard.state(noteID)
}

// Generate derives tags and a summary for the note and returns the
// merged fields. Preconditions are checked in order before any network
// call: non-empty content, then a configured credential. A second call
// for the same note while one is in flight returns ErrGenerationInFlight
// without issuing a request. On any failure the note's persisted fields
// are untouched; the caller receives exactly one error. The session
// always returns to Idle, whatever the exit path.
func (c *Coordinator) Generate(ctx context.Context, note *notes.Note) (*Update, error) {
	if !c.guard.acquire(note.ID) {
		return nil, ErrGenerationInFlight
	}
	defer c.guard.release(note.ID)

	content := strings.TrimSpace(note.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if c.provider.GetAPIKey() == "" {
		return nil, ErrNoCredential
	}

	prompt := c.tok.Truncate(content, c.promptBudget)

	completion, err := c.provider.Complete(ctx, []*llm.Message{
		llm.NewSystemMessage(systemPrompt),
		llm.NewUserMessage(prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("enrich: completion failed: %w", err)
	}

	result := ParseCompletion(completion.Content)

	update := &Update{
		Tags:    notes.MergeTags(note.Tags, result.Tags),
		Content: note.Content,
	}
	if result.HasSummary && result.Summary != "" {
		update.Content = result.Summary + summarySeparator + note.Content
	}

	return update, nil
}

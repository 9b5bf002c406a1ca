// Package tui provides the terminal user interface for Note Garden,
// a keyboard-driven notebook with LLM-assisted tagging, summaries, and
// knowledge graph extraction.
//
// The TUI codebase is split into multiple files for better organization:
// - executor.go: Executor implementation and program lifecycle
// - model.go: Core model structure and state
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - commands.go: Background commands for enrichment, extraction, and saving
// - styles.go: Color schemes and styling
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/notegarden/notegarden/pkg/enrich"
	"github.com/notegarden/notegarden/pkg/knowledge"
	"github.com/notegarden/notegarden/pkg/logging"
	"github.com/notegarden/notegarden/pkg/notes"
)

// Executor runs the Note Garden TUI until the user exits.
type Executor struct {
	store        *notes.Store
	collection   *notes.Collection
	coordinator  *enrich.Coordinator
	orchestrator *knowledge.Orchestrator
	logger       *logging.Logger
	program      *tea.Program
}

// NewExecutor creates a TUI executor over a loaded note collection.
// The coordinator and orchestrator may be nil when the corresponding
// feature is not configured; the TUI surfaces that as a toast instead
// of failing.
func NewExecutor(store *notes.Store, collection *notes.Collection, coordinator *enrich.Coordinator, orchestrator *knowledge.Orchestrator, logger *logging.Logger) *Executor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Executor{
		store:        store,
		collection:   collection,
		coordinator:  coordinator,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Run starts the TUI and blocks until the user exits. The note store is
// saved on exit.
func (e *Executor) Run(ctx context.Context) error {
	m := initialModel()
	m.store = e.store
	m.collection = e.collection
	m.coordinator = e.coordinator
	m.orchestrator = e.orchestrator
	m.logger = e.logger
	m.refreshVisible()
	m.loadSelected()

	e.logger.Infof("TUI starting with %d notes", e.collection.Len())

	e.program = tea.NewProgram(
		&m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := e.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	// Final save so edits survive even if the exit-path save command
	// never ran
	if err := e.store.Save(e.collection); err != nil {
		return fmt.Errorf("failed to save notes on exit: %w", err)
	}

	e.logger.Infof("TUI exited cleanly")
	return nil
}

// initialModel builds the model with all Bubble Tea components configured.
func initialModel() model {
	title := textinput.New()
	title.Placeholder = notes.DefaultTitle
	title.CharLimit = 120

	search := textinput.New()
	search.Placeholder = "搜索笔记..."
	search.CharLimit = 80

	editor := textarea.New()
	editor.Placeholder = "开始记录..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		titleInput:  title,
		searchInput: search,
		editor:      editor,
		spinner:     sp,
		enriching:   make(map[string]bool),
		toast:       &toastNotification{},
		focus:       focusList,
	}
}

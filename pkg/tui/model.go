package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/notegarden/notegarden/pkg/enrich"
	"github.com/notegarden/notegarden/pkg/knowledge"
	"github.com/notegarden/notegarden/pkg/logging"
	"github.com/notegarden/notegarden/pkg/notes"
)

// paneFocus identifies which pane receives keyboard input.
type paneFocus int

const (
	focusSidebar paneFocus = iota
	focusList
	focusEditor
	focusSearch
)

// sidebarKind distinguishes notebook entries from tag entries in the sidebar.
type sidebarKind int

const (
	sidebarAll sidebarKind = iota
	sidebarNotebook
	sidebarTag
)

// sidebarItem is one selectable row in the sidebar.
type sidebarItem struct {
	kind  sidebarKind
	label string
}

// model represents the state of the TUI application.
// It contains all components needed for the interactive terminal interface.
type model struct {
	// Bubble Tea components
	titleInput  textinput.Model
	searchInput textinput.Model
	editor      textarea.Model
	spinner     spinner.Model

	// Note state
	collection *notes.Collection
	store      *notes.Store
	visible    []*notes.Note // Notes shown in the list after filter/search
	selected   int           // Index into visible
	dirty      bool          // Unsaved editor changes

	// Sidebar state
	sidebar        []sidebarItem
	sidebarCursor  int
	activeNotebook string // Empty means no notebook filter
	activeTag      string // Empty means no tag filter

	// Enrichment and extraction
	coordinator  *enrich.Coordinator
	orchestrator *knowledge.Orchestrator
	enriching    map[string]bool // Note IDs with a generation in flight
	extracting   bool

	logger *logging.Logger

	// UI state
	focus paneFocus
	toast *toastNotification

	// Window dimensions
	width  int
	height int
	ready  bool

	shouldQuit bool
}

// enrichDoneMsg signals that tag and summary generation finished for a note
type enrichDoneMsg struct {
	noteID string
	update *enrich.Update
	err    error
}

// extractDoneMsg signals that a knowledge extraction session finished
type extractDoneMsg struct {
	report *knowledge.SessionReport
	err    error
}

// saveDoneMsg signals that a store save finished
type saveDoneMsg struct {
	err error
}

// toastMsg triggers a toast notification
type toastMsg struct {
	message string
	details string
	icon    string
	isError bool
}

// toastNotification represents a temporary notification message
type toastNotification struct {
	active    bool
	message   string
	details   string
	icon      string
	isError   bool
	showUntil time.Time
}

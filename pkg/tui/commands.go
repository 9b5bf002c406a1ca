package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/notegarden/notegarden/pkg/notes"
)

// enrichTimeout bounds a single tag and summary generation request.
const enrichTimeout = 60 * time.Second

// extractTimeout bounds a full knowledge extraction session, including
// server startup and sequential tool execution.
const extractTimeout = 120 * time.Second

// saveCmd persists the collection to disk off the update loop. The
// snapshot is taken here, on the update-loop goroutine, so the background
// write never reads notes the user is still editing.
func (m *model) saveCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	snapshot := m.collection.Snapshot()
	store := m.store
	return func() tea.Msg {
		return saveDoneMsg{err: store.Save(snapshot)}
	}
}

// enrichCmd runs tag and summary generation for a note in the background.
func (m *model) enrichCmd(note *notes.Note) tea.Cmd {
	coordinator := m.coordinator
	logger := m.logger
	snapshot := *note
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
		defer cancel()

		logger.Infof("starting enrichment for note %s", snapshot.ID)
		update, err := coordinator.Generate(ctx, &snapshot)
		if err != nil {
			logger.Errorf("enrichment failed for note %s: %v", snapshot.ID, err)
		}
		return enrichDoneMsg{noteID: snapshot.ID, update: update, err: err}
	}
}

// extractCmd runs a knowledge extraction session for a note in the
// background.
func (m *model) extractCmd(note *notes.Note) tea.Cmd {
	orchestrator := m.orchestrator
	logger := m.logger
	content := note.Content
	noteID := note.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
		defer cancel()

		logger.Infof("starting knowledge extraction for note %s", noteID)
		report, err := orchestrator.RunSession(ctx, content)
		if err != nil {
			logger.Errorf("knowledge extraction failed for note %s: %v", noteID, err)
		}
		return extractDoneMsg{report: report, err: err}
	}
}

// copyNoteToClipboard exports a note as Markdown and places it on the
// system clipboard.
func copyNoteToClipboard(note *notes.Note) error {
	exported, err := notes.Export(note)
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(exported))
}

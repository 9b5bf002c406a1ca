package tui

import (
	"path/filepath"
	"testing"

	"github.com/notegarden/notegarden/pkg/notes"
)

func TestSaveCmd_SnapshotsAtCreation(t *testing.T) {
	store, err := notes.NewStore(filepath.Join(t.TempDir(), "notes.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	note := noteWithTags("title", "before")
	collection := notes.NewCollection(note)
	m := testModel(t, collection)
	m.store = store

	cmd := m.saveCmd()

	// Edits after the command is built belong to the next save
	note.Content = "after"
	note.Touch()

	msg := cmd()
	if done, ok := msg.(saveDoneMsg); !ok || done.err != nil {
		t.Fatalf("expected successful saveDoneMsg, got %#v", msg)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	saved, err := loaded.Get(note.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if saved.Content != "before" {
		t.Errorf("expected snapshot content %q, got %q", "before", saved.Content)
	}
}

func TestSaveCmd_NilWithoutStore(t *testing.T) {
	m := testModel(t, notes.NewCollection())
	if m.saveCmd() != nil {
		t.Error("expected nil command when no store is configured")
	}
}

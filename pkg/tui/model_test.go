package tui

import (
	"errors"
	"testing"

	"github.com/notegarden/notegarden/pkg/enrich"
	"github.com/notegarden/notegarden/pkg/knowledge"
	"github.com/notegarden/notegarden/pkg/logging"
	"github.com/notegarden/notegarden/pkg/notes"
)

func testModel(t *testing.T, collection *notes.Collection) *model {
	t.Helper()
	m := initialModel()
	m.collection = collection
	m.logger = logging.Nop()
	m.refreshVisible()
	m.loadSelected()
	return &m
}

func noteWithTags(title, content string, tags ...string) *notes.Note {
	n := notes.NewNote()
	n.Title = title
	n.Content = content
	n.Tags = tags
	return n
}

func TestRefreshVisible_NotebookFilter(t *testing.T) {
	collection := notes.NewCollection(
		noteWithTags("a", "", "工作"),
		noteWithTags("b", "", "生活"),
		noteWithTags("c", "", "工作", "生活"),
	)
	m := testModel(t, collection)

	m.activeNotebook = "工作"
	m.refreshVisible()

	if len(m.visible) != 2 {
		t.Fatalf("Expected 2 visible notes, got %d", len(m.visible))
	}
	for _, n := range m.visible {
		if notes.Notebook(n) != "工作" {
			t.Errorf("Expected notebook 工作, got %s", notes.Notebook(n))
		}
	}
}

func TestRefreshVisible_TagFilter(t *testing.T) {
	collection := notes.NewCollection(
		noteWithTags("a", "", "工作"),
		noteWithTags("b", "", "生活"),
		noteWithTags("c", "", "工作", "生活"),
	)
	m := testModel(t, collection)

	m.activeTag = "生活"
	m.refreshVisible()

	if len(m.visible) != 2 {
		t.Fatalf("Expected 2 visible notes, got %d", len(m.visible))
	}
}

func TestRefreshVisible_ClampsCursor(t *testing.T) {
	collection := notes.NewCollection(
		noteWithTags("a", "", "工作"),
		noteWithTags("b", "", "工作"),
	)
	m := testModel(t, collection)
	m.selected = 1

	m.activeNotebook = "没有的笔记本"
	m.refreshVisible()

	if m.selected != 0 {
		t.Errorf("Expected cursor clamped to 0, got %d", m.selected)
	}
	if m.selectedNote() != nil {
		t.Error("Expected no selected note for empty list")
	}
}

func TestRebuildSidebar(t *testing.T) {
	collection := notes.NewCollection(
		noteWithTags("a", "", "工作", "周报"),
		noteWithTags("b", ""),
	)
	m := testModel(t, collection)

	// All-notes entry, 工作 and Untitled notebooks, 工作 and 周报 tags
	if len(m.sidebar) != 5 {
		t.Fatalf("Expected 5 sidebar items, got %d", len(m.sidebar))
	}
	if m.sidebar[0].kind != sidebarAll {
		t.Error("Expected first sidebar item to be the all-notes entry")
	}
}

func TestFlushEditor_AppliesTitleAndContent(t *testing.T) {
	collection := notes.NewCollection(noteWithTags("old", "old content"))
	m := testModel(t, collection)

	m.titleInput.SetValue("新标题")
	m.editor.SetValue("新内容")
	m.dirty = true
	m.flushEditor()

	note := m.selectedNote()
	if note.Title != "新标题" {
		t.Errorf("Expected title 新标题, got %s", note.Title)
	}
	if note.Content != "新内容" {
		t.Errorf("Expected content 新内容, got %s", note.Content)
	}
}

func TestFlushEditor_BlankTitleFallsBack(t *testing.T) {
	collection := notes.NewCollection(noteWithTags("old", ""))
	m := testModel(t, collection)

	m.titleInput.SetValue("   ")
	m.dirty = true
	m.flushEditor()

	if got := m.selectedNote().Title; got != notes.DefaultTitle {
		t.Errorf("Expected default title, got %s", got)
	}
}

func TestCreateNote_SelectsNew(t *testing.T) {
	collection := notes.NewCollection(noteWithTags("existing", "", "工作"))
	m := testModel(t, collection)
	m.activeNotebook = "工作"

	m.createNote()

	if m.collection.Len() != 2 {
		t.Fatalf("Expected 2 notes, got %d", m.collection.Len())
	}
	if m.activeNotebook != "" {
		t.Error("Expected notebook filter cleared after create")
	}
	if m.selected != 0 {
		t.Errorf("Expected new note selected at 0, got %d", m.selected)
	}
	if m.focus != focusEditor {
		t.Error("Expected focus to move to editor")
	}
}

func TestDeleteSelected(t *testing.T) {
	collection := notes.NewCollection(noteWithTags("a", ""), noteWithTags("b", ""))
	m := testModel(t, collection)

	m.deleteSelected()

	if m.collection.Len() != 1 {
		t.Fatalf("Expected 1 note after delete, got %d", m.collection.Len())
	}
	if len(m.visible) != 1 {
		t.Errorf("Expected visible list refreshed, got %d entries", len(m.visible))
	}
}

func TestHandleEnrichDone_AppliesUpdate(t *testing.T) {
	note := noteWithTags("a", "原始内容")
	collection := notes.NewCollection(note)
	m := testModel(t, collection)
	m.enriching[note.ID] = true

	m.handleEnrichDone(enrichDoneMsg{
		noteID: note.ID,
		update: &enrich.Update{
			Tags:    []string{"工作", "周报"},
			Content: "摘要：本周完成了周报。\n\n原始内容",
		},
	})

	if m.enriching[note.ID] {
		t.Error("Expected in-flight flag cleared")
	}
	got, _ := m.collection.Get(note.ID)
	if len(got.Tags) != 2 {
		t.Errorf("Expected 2 tags applied, got %v", got.Tags)
	}
	if got.Content == "原始内容" {
		t.Error("Expected summary-prefixed content applied")
	}
}

func TestHandleEnrichDone_ErrorShowsToast(t *testing.T) {
	note := noteWithTags("a", "")
	collection := notes.NewCollection(note)
	m := testModel(t, collection)
	m.enriching[note.ID] = true

	m.handleEnrichDone(enrichDoneMsg{noteID: note.ID, err: enrich.ErrEmptyContent})

	if !m.toast.active || !m.toast.isError {
		t.Error("Expected an error toast")
	}
	if m.enriching[note.ID] {
		t.Error("Expected in-flight flag cleared on error")
	}
}

func TestHandleEnrichDone_NoteDeletedMidFlight(t *testing.T) {
	note := noteWithTags("a", "内容")
	collection := notes.NewCollection(note)
	m := testModel(t, collection)

	if err := m.collection.Delete(note.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	m.refreshVisible()

	// Result for a deleted note is dropped without a toast
	m.handleEnrichDone(enrichDoneMsg{
		noteID: note.ID,
		update: &enrich.Update{Tags: []string{"x"}, Content: "y"},
	})

	if m.toast.active {
		t.Error("Expected no toast for a dropped result")
	}
}

func TestHandleExtractDone_ReportsFailures(t *testing.T) {
	collection := notes.NewCollection(noteWithTags("a", "内容"))
	m := testModel(t, collection)
	m.extracting = true

	report := &knowledge.SessionReport{
		Invoked: 2,
		Outcomes: []knowledge.Outcome{
			{Err: errors.New("boom")},
		},
	}
	m.handleExtractDone(extractDoneMsg{report: report})

	if m.extracting {
		t.Error("Expected extracting flag cleared")
	}
	if !m.toast.active || !m.toast.isError {
		t.Error("Expected a warning toast for partial failure")
	}
}

func TestEnrichErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty content", enrich.ErrEmptyContent, "笔记内容为空，无法生成标签和摘要"},
		{"no credential", enrich.ErrNoCredential, "未配置 API 密钥"},
		{"in flight", enrich.ErrGenerationInFlight, "该笔记正在生成标签和摘要"},
		{"other", errors.New("network down"), "network down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := enrichErrorText(tt.err); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected unmodified string, got %q", got)
	}
	if got := truncate("这是一个很长的标题需要截断", 6); got != "这是一个很…" {
		t.Errorf("Expected truncated string, got %q", got)
	}
}

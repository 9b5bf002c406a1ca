package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/notegarden/notegarden/pkg/enrich"
	"github.com/notegarden/notegarden/pkg/notes"
)

// Init starts the spinner tick loop.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles all state updates for the TUI model.
// This is the main event loop handler for Bubble Tea.
//
// Uses pointer receiver so state mutations from key handlers and async
// completion messages persist across updates.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.shouldQuit {
		return m, tea.Quit
	}

	var spinnerCmd tea.Cmd
	m.spinner, spinnerCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg, spinnerCmd)

	case enrichDoneMsg:
		return m.handleEnrichDone(msg)

	case extractDoneMsg:
		return m.handleExtractDone(msg)

	case saveDoneMsg:
		if msg.err != nil {
			m.showToast("保存失败", msg.err.Error(), "✗", true)
		}
		return m, spinnerCmd

	case toastMsg:
		m.showToast(msg.message, msg.details, msg.icon, msg.isError)
		return m, spinnerCmd
	}

	return m, spinnerCmd
}

// handleWindowResize recalculates the pane layout for the new terminal size.
func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	editorWidth := m.editorPaneWidth() - 4
	if editorWidth < 20 {
		editorWidth = 20
	}
	editorHeight := m.height - 10
	if editorHeight < 5 {
		editorHeight = 5
	}
	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(editorHeight)
	m.titleInput.Width = editorWidth - 2
	m.searchInput.Width = m.listPaneWidth() - 6

	return m, nil
}

// handleKey dispatches keyboard input based on the focused pane.
func (m *model) handleKey(msg tea.KeyMsg, spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	// Global bindings work regardless of focus
	switch msg.String() {
	case "ctrl+c":
		m.flushEditor()
		m.shouldQuit = true
		return m, tea.Sequence(m.saveCmd(), tea.Quit)
	case "ctrl+s":
		m.flushEditor()
		return m, tea.Batch(m.saveCmd(), spinnerCmd)
	case "ctrl+g":
		return m.startEnrichment(spinnerCmd)
	case "ctrl+k":
		return m.startExtraction(spinnerCmd)
	case "tab":
		m.cycleFocus()
		return m, spinnerCmd
	}

	switch m.focus {
	case focusSidebar:
		return m.handleSidebarKey(msg, spinnerCmd)
	case focusList:
		return m.handleListKey(msg, spinnerCmd)
	case focusEditor:
		return m.handleEditorKey(msg, spinnerCmd)
	case focusSearch:
		return m.handleSearchKey(msg, spinnerCmd)
	}

	return m, spinnerCmd
}

func (m *model) handleSidebarKey(msg tea.KeyMsg, spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
	case "down", "j":
		if m.sidebarCursor < len(m.sidebar)-1 {
			m.sidebarCursor++
		}
	case "enter", " ":
		m.applySidebarSelection()
	}
	return m, spinnerCmd
}

// applySidebarSelection activates the notebook or tag filter under the cursor.
func (m *model) applySidebarSelection() {
	if m.sidebarCursor >= len(m.sidebar) {
		return
	}
	item := m.sidebar[m.sidebarCursor]
	switch item.kind {
	case sidebarAll:
		m.activeNotebook = ""
		m.activeTag = ""
	case sidebarNotebook:
		m.activeNotebook = item.label
		m.activeTag = ""
	case sidebarTag:
		m.activeTag = item.label
		m.activeNotebook = ""
	}
	m.refreshVisible()
}

func (m *model) handleListKey(msg tea.KeyMsg, spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.flushEditor()
			m.selected--
			m.loadSelected()
		}
	case "down", "j":
		if m.selected < len(m.visible)-1 {
			m.flushEditor()
			m.selected++
			m.loadSelected()
		}
	case "enter":
		if len(m.visible) > 0 {
			m.focus = focusEditor
			m.editor.Focus()
		}
	case "n":
		m.createNote()
		return m, tea.Batch(m.saveCmd(), spinnerCmd)
	case "d":
		m.deleteSelected()
		return m, tea.Batch(m.saveCmd(), spinnerCmd)
	case "y":
		return m.yankSelected(spinnerCmd)
	case "/":
		m.focus = focusSearch
		m.searchInput.Focus()
	case "esc":
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.refreshVisible()
		}
	}
	return m, spinnerCmd
}

func (m *model) handleEditorKey(msg tea.KeyMsg, spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.flushEditor()
		m.editor.Blur()
		m.titleInput.Blur()
		m.focus = focusList
		return m, tea.Batch(m.saveCmd(), spinnerCmd)
	case "ctrl+t":
		if m.titleInput.Focused() {
			m.titleInput.Blur()
			m.editor.Focus()
		} else {
			m.editor.Blur()
			m.titleInput.Focus()
		}
		return m, spinnerCmd
	}

	var cmd tea.Cmd
	if m.titleInput.Focused() {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	m.dirty = true
	return m, tea.Batch(cmd, spinnerCmd)
}

func (m *model) handleSearchKey(msg tea.KeyMsg, spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.focus = focusList
		m.refreshVisible()
		return m, spinnerCmd
	case "enter":
		m.searchInput.Blur()
		m.focus = focusList
		return m, spinnerCmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.refreshVisible()
	return m, tea.Batch(cmd, spinnerCmd)
}

// cycleFocus moves keyboard focus to the next pane.
func (m *model) cycleFocus() {
	m.flushEditor()
	m.editor.Blur()
	m.titleInput.Blur()
	m.searchInput.Blur()

	switch m.focus {
	case focusSidebar:
		m.focus = focusList
	case focusList, focusSearch:
		m.focus = focusEditor
		m.editor.Focus()
	case focusEditor:
		m.focus = focusSidebar
	}
}

// createNote adds a new note and selects it for editing.
func (m *model) createNote() {
	m.flushEditor()
	note := notes.NewNote()
	m.collection.Add(note)

	// Clear filters so the new note is visible at the top
	m.activeNotebook = ""
	m.activeTag = ""
	m.searchInput.SetValue("")
	m.refreshVisible()
	m.selected = 0
	m.loadSelected()
	m.focus = focusEditor
	m.editor.Focus()
}

// deleteSelected removes the selected note from the collection.
func (m *model) deleteSelected() {
	note := m.selectedNote()
	if note == nil {
		return
	}
	if err := m.collection.Delete(note.ID); err != nil {
		m.showToast("删除失败", err.Error(), "✗", true)
		return
	}
	m.refreshVisible()
	m.loadSelected()
}

// yankSelected copies the selected note to the clipboard as Markdown.
func (m *model) yankSelected(spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	note := m.selectedNote()
	if note == nil {
		return m, spinnerCmd
	}
	m.flushEditor()
	if err := copyNoteToClipboard(note); err != nil {
		m.showToast("复制失败", err.Error(), "✗", true)
		return m, spinnerCmd
	}
	m.showToast("已复制", fmt.Sprintf("笔记 %q 已复制到剪贴板", note.Title), "📋", false)
	return m, spinnerCmd
}

// startEnrichment kicks off tag and summary generation for the selected note.
func (m *model) startEnrichment(spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	note := m.selectedNote()
	if note == nil {
		return m, spinnerCmd
	}
	m.flushEditor()

	if m.coordinator == nil {
		m.showToast("无法生成", "未配置 API 密钥", "✗", true)
		return m, spinnerCmd
	}
	if m.enriching[note.ID] {
		m.showToast("请稍候", "该笔记正在生成标签和摘要", "⏳", false)
		return m, spinnerCmd
	}

	m.enriching[note.ID] = true
	return m, tea.Batch(m.enrichCmd(note), spinnerCmd)
}

// handleEnrichDone applies a finished generation to the note, or surfaces
// the failure as a single toast.
func (m *model) handleEnrichDone(msg enrichDoneMsg) (tea.Model, tea.Cmd) {
	delete(m.enriching, msg.noteID)

	if msg.err != nil {
		m.showToast("生成失败", enrichErrorText(msg.err), "✗", true)
		return m, nil
	}

	note, err := m.collection.Get(msg.noteID)
	if err != nil {
		// Note was deleted while generating; drop the result
		return m, nil
	}

	note.Tags = msg.update.Tags
	note.Content = msg.update.Content
	note.Touch()
	if err := m.collection.Apply(note); err != nil {
		m.showToast("生成失败", err.Error(), "✗", true)
		return m, nil
	}

	m.refreshVisible()
	if sel := m.selectedNote(); sel != nil && sel.ID == note.ID {
		m.loadSelected()
	}
	m.showToast("生成完成", "标签和摘要已更新", "✨", false)
	return m, m.saveCmd()
}

// enrichErrorText maps enrichment failures to user-facing text.
func enrichErrorText(err error) string {
	switch {
	case errors.Is(err, enrich.ErrEmptyContent):
		return "笔记内容为空，无法生成标签和摘要"
	case errors.Is(err, enrich.ErrNoCredential):
		return "未配置 API 密钥"
	case errors.Is(err, enrich.ErrGenerationInFlight):
		return "该笔记正在生成标签和摘要"
	default:
		return err.Error()
	}
}

// startExtraction kicks off a knowledge extraction session for the
// selected note.
func (m *model) startExtraction(spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	note := m.selectedNote()
	if note == nil {
		return m, spinnerCmd
	}
	m.flushEditor()

	if m.orchestrator == nil {
		m.showToast("无法提取", "未配置知识图谱服务", "✗", true)
		return m, spinnerCmd
	}
	if m.extracting {
		m.showToast("请稍候", "知识提取正在进行中", "⏳", false)
		return m, spinnerCmd
	}

	m.extracting = true
	return m, tea.Batch(m.extractCmd(note), spinnerCmd)
}

// handleExtractDone summarizes a finished extraction session in a toast.
func (m *model) handleExtractDone(msg extractDoneMsg) (tea.Model, tea.Cmd) {
	m.extracting = false

	if msg.err != nil {
		m.showToast("提取失败", msg.err.Error(), "✗", true)
		return m, nil
	}

	report := msg.report
	if report.Invoked == 0 {
		m.showToast("提取完成", "未发现可提取的知识", "🧠", false)
		return m, nil
	}

	details := fmt.Sprintf("%d 个工具调用完成", report.Invoked)
	if failed := report.Failed(); failed > 0 {
		details = fmt.Sprintf("%s，%d 个失败", details, failed)
		m.showToast("提取部分完成", details, "⚠", true)
		return m, nil
	}
	m.showToast("提取完成", details, "🧠", false)
	return m, nil
}

// flushEditor writes pending editor changes back to the selected note.
func (m *model) flushEditor() {
	if !m.dirty {
		return
	}
	note := m.selectedNote()
	if note == nil {
		m.dirty = false
		return
	}

	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		title = notes.DefaultTitle
	}
	note.Title = title
	note.Content = m.editor.Value()
	note.Touch()
	if err := m.collection.Apply(note); err == nil {
		m.rebuildSidebar()
	}
	m.dirty = false
}

// selectedNote returns the note under the list cursor, or nil.
func (m *model) selectedNote() *notes.Note {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return nil
	}
	return m.visible[m.selected]
}

// loadSelected loads the selected note into the editor components.
func (m *model) loadSelected() {
	note := m.selectedNote()
	if note == nil {
		m.titleInput.SetValue("")
		m.editor.SetValue("")
		m.dirty = false
		return
	}
	m.titleInput.SetValue(note.Title)
	m.editor.SetValue(note.Content)
	m.dirty = false
}

// refreshVisible recomputes the note list from the active filter and
// search pattern, keeping the cursor in range.
func (m *model) refreshVisible() {
	var filtered []*notes.Note
	switch {
	case m.activeNotebook != "":
		filtered = m.collection.FilterByNotebook(m.activeNotebook)
	case m.activeTag != "":
		filtered = m.collection.FilterByTag(m.activeTag)
	default:
		filtered = m.collection.All()
	}

	if pattern := strings.TrimSpace(m.searchInput.Value()); pattern != "" {
		matched, err := notes.NewCollection(filtered...).Search(pattern)
		if err == nil {
			filtered = matched
		}
	}

	m.visible = filtered
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.rebuildSidebar()
}

// rebuildSidebar recomputes notebook and tag entries from the collection.
func (m *model) rebuildSidebar() {
	items := []sidebarItem{{kind: sidebarAll, label: "全部笔记"}}
	for _, nb := range m.collection.Notebooks() {
		items = append(items, sidebarItem{kind: sidebarNotebook, label: nb})
	}
	for _, tag := range m.collection.Tags() {
		items = append(items, sidebarItem{kind: sidebarTag, label: tag})
	}
	m.sidebar = items
	if m.sidebarCursor >= len(m.sidebar) {
		m.sidebarCursor = len(m.sidebar) - 1
	}
}

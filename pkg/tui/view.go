package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/notegarden/notegarden/pkg/notes"
)

const sidebarWidth = 24
const listWidth = 34

// View renders the entire TUI interface.
// This is called by Bubble Tea whenever the UI needs to be redrawn.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.buildHeader()
	tips := m.buildTips()
	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.buildSidebar(),
		m.buildNoteList(),
		m.buildEditor(),
	)
	bottomBar := m.buildBottomBar()

	sections := []string{header, tips, panes, bottomBar}
	if toast := m.renderToast(); toast != "" {
		sections = append(sections, toast)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// buildHeader renders the application header.
func (m *model) buildHeader() string {
	return headerStyle.Render(" 🌱 Note Garden")
}

// buildTips renders context-sensitive usage tips
func (m *model) buildTips() string {
	switch m.focus {
	case focusEditor:
		return tipsStyle.Render("  编辑模式: Ctrl+T 切换标题/正文 • Esc 保存并返回 • Ctrl+G 生成标签和摘要 • Ctrl+K 知识提取")
	case focusSearch:
		return tipsStyle.Render("  搜索: 输入通配符模式 (如 go* 或 *任务*) • Enter 确认 • Esc 清除")
	default:
		return tipsStyle.Render("  Tab 切换面板 • n 新建 • d 删除 • y 复制 • / 搜索 • Enter 编辑 • Ctrl+S 保存 • Ctrl+C 退出")
	}
}

// buildSidebar renders the notebook and tag filter pane.
func (m *model) buildSidebar() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("笔记本"))
	b.WriteString("\n")

	for i, item := range m.sidebar {
		if item.kind == sidebarTag && (i == 0 || m.sidebar[i-1].kind != sidebarTag) {
			b.WriteString("\n")
			b.WriteString(headerStyle.Render("标签"))
			b.WriteString("\n")
		}

		label := item.label
		if item.kind == sidebarTag {
			label = "# " + label
		}
		label = truncate(label, sidebarWidth-6)

		marker := "  "
		if m.isActiveFilter(item) {
			marker = "● "
		}

		line := marker + label
		if i == m.sidebarCursor && m.focus == focusSidebar {
			b.WriteString(selectedItemStyle.Render(line))
		} else if item.kind == sidebarTag {
			b.WriteString(tagStyle.Render(line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	style := sidebarStyle
	if m.focus == focusSidebar {
		style = sidebarFocusStyle
	}
	return style.Width(sidebarWidth).Height(m.paneHeight()).Render(b.String())
}

// isActiveFilter reports whether a sidebar item matches the current filter.
func (m *model) isActiveFilter(item sidebarItem) bool {
	switch item.kind {
	case sidebarAll:
		return m.activeNotebook == "" && m.activeTag == ""
	case sidebarNotebook:
		return m.activeNotebook == item.label
	case sidebarTag:
		return m.activeTag == item.label
	}
	return false
}

// buildNoteList renders the filtered note list pane.
func (m *model) buildNoteList() string {
	var b strings.Builder

	if m.focus == focusSearch || m.searchInput.Value() != "" {
		b.WriteString("🔍 ")
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(tipsStyle.Render("没有笔记"))
	}

	for i, note := range m.visible {
		title := truncate(note.Title, listWidth-8)
		if m.enriching[note.ID] {
			title = fmt.Sprintf("%s %s", m.spinner.View(), title)
		}

		line := title
		if i == m.selected {
			line = "▸ " + line
			b.WriteString(selectedItemStyle.Render(line))
		} else {
			line = "  " + line
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
		b.WriteString(tipsStyle.Render("  " + note.UpdatedAt.Format("2006-01-02 15:04")))
		b.WriteString("\n")
	}

	style := listStyle
	if m.focus == focusList || m.focus == focusSearch {
		style = listFocusStyle
	}
	return style.Width(listWidth).Height(m.paneHeight()).Render(b.String())
}

// buildEditor renders the title and content editing pane.
func (m *model) buildEditor() string {
	var b strings.Builder

	note := m.selectedNote()
	if note == nil {
		b.WriteString(tipsStyle.Render("选择或新建一条笔记"))
	} else {
		b.WriteString(m.titleInput.View())
		b.WriteString("\n")
		if len(note.Tags) > 0 {
			b.WriteString(tagStyle.Render("# " + strings.Join(note.Tags, "  # ")))
			b.WriteString("\n")
		}
		b.WriteString(tipsStyle.Render(fmt.Sprintf("笔记本: %s", notes.Notebook(note))))
		b.WriteString("\n\n")
		b.WriteString(m.editor.View())
	}

	style := editorStyle
	if m.focus == focusEditor {
		style = editorFocusStyle
	}
	return style.Width(m.editorPaneWidth()).Height(m.paneHeight()).Render(b.String())
}

// buildBottomBar renders the bottom status bar.
func (m *model) buildBottomBar() string {
	left := fmt.Sprintf("%d 条笔记", m.collection.Len())
	if m.activeNotebook != "" {
		left = fmt.Sprintf("%s • 笔记本: %s", left, m.activeNotebook)
	}
	if m.activeTag != "" {
		left = fmt.Sprintf("%s • 标签: %s", left, m.activeTag)
	}

	right := ""
	if m.extracting {
		right = fmt.Sprintf("%s 知识提取中...", m.spinner.View())
	} else if len(m.enriching) > 0 {
		right = fmt.Sprintf("%s 生成中...", m.spinner.View())
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if padding < 1 {
		padding = 1
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

// renderToast renders a toast notification
func (m *model) renderToast() string {
	if !m.toast.active || time.Now().After(m.toast.showUntil) {
		return ""
	}

	boxWidth := m.width - 4
	if boxWidth < 40 {
		boxWidth = 40
	}

	var content strings.Builder
	content.WriteString(fmt.Sprintf("%s %s", m.toast.icon, m.toast.message))
	if m.toast.details != "" {
		content.WriteString("\n")
		if m.toast.isError {
			content.WriteString(errorStyle.Render(m.toast.details))
		} else {
			content.WriteString(m.toast.details)
		}
	}

	borderColor := leafGreen
	if m.toast.isError {
		borderColor = alertRed
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(boxWidth)

	return boxStyle.Render(content.String())
}

// showToast displays a toast notification to the user
func (m *model) showToast(message, details, icon string, isError bool) {
	m.toast.active = true
	m.toast.message = message
	m.toast.details = details
	m.toast.icon = icon
	m.toast.isError = isError
	m.toast.showUntil = time.Now().Add(3 * time.Second)
}

// paneHeight returns the inner height available to the three main panes.
func (m *model) paneHeight() int {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	return h
}

// editorPaneWidth returns the width of the editor pane.
func (m *model) editorPaneWidth() int {
	w := m.width - sidebarWidth - listWidth - 2
	if w < 30 {
		w = 30
	}
	return w
}

// listPaneWidth returns the width of the note list pane.
func (m *model) listPaneWidth() int {
	return listWidth
}

// truncate shortens a string to at most max runes, appending an ellipsis.
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

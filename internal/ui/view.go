package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todomvc/internal/todo"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("161")).MarginBottom(1)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedFilter = lipgloss.NewStyle().Bold(true).Underline(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	frameStyle     = lipgloss.NewStyle().Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder
	s := m.loop.State()

	b.WriteString(titleStyle.Render("todos"))
	b.WriteString("\n")
	if el, ok := m.surface.Element(newTodoKey); ok {
		b.WriteString(el.Input.View())
	}
	b.WriteString("\n\n")

	// main and footer are hidden while the list is empty
	if s.Total() > 0 {
		b.WriteString(m.renderMain(s))
		b.WriteString("\n")
		b.WriteString(renderFooter(s))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return frameStyle.Render(b.String())
}

func (m Model) renderMain(s todo.State) string {
	var b strings.Builder
	toggle := "[ ]"
	if s.AllDone() {
		toggle = "[x]"
	}
	b.WriteString(dimStyle.Render(toggle + " Mark all as complete"))
	b.WriteString("\n")

	listing := m.mode() == modeList
	for i, t := range s.Visible() {
		b.WriteString(m.renderItem(t, listing && i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderItem(t todo.Todo, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}
	if t.Editing {
		if el, ok := m.surface.Element(editKey(t.ID)); ok {
			return cursor + el.Input.View()
		}
	}

	checkbox := "[ ]"
	title := t.Title
	if t.Completed {
		checkbox = "[x]"
		title = doneStyle.Render(title)
	}
	return fmt.Sprintf("%s%s %s", cursor, checkbox, title)
}

func renderFooter(s todo.State) string {
	parts := []string{itemsLeft(s.Remaining())}

	links := make([]string, 0, len(todo.Filters()))
	for _, f := range todo.Filters() {
		label := f.Label()
		if f == s.Visibility {
			label = selectedFilter.Render(label)
		}
		links = append(links, label)
	}
	parts = append(parts, strings.Join(links, " | "))

	if s.CompletedCount() > 0 {
		parts = append(parts, "Clear completed")
	}
	return strings.Join(parts, "   ")
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

package ui

import (
	"fmt"
	"strings"

	"taskmaster/internal/config"
	"taskmaster/internal/todo"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Task Master"))
	if m.dark {
		b.WriteString(m.styles.muted.Render("  (dark)"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(m.styles.muted.Render("No tasks found"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		if m.form != nil {
			b.WriteString("\n")
			b.WriteString(m.styles.box.Render(m.renderForm()))
			b.WriteString("\n")
			b.WriteString(m.input.View())
			b.WriteString("\n")
		}
	case modeEdit:
		b.WriteString("\nEdit: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeDue:
		b.WriteString("\nDue: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.statusErr {
		b.WriteString(m.styles.errorText.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderFilters() string {
	active := m.store.Filter()
	parts := make([]string, 0, len(todo.Filters()))
	for _, f := range todo.Filters() {
		if f == active {
			parts = append(parts, m.styles.activeTab.Render(f.Title()))
		} else {
			parts = append(parts, m.styles.tab.Render(f.Title()))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTaskList() string {
	today := m.store.Today()
	var b strings.Builder
	for i, t := range m.tasks {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		star := m.styles.muted.Render("☆")
		if t.Important {
			star = m.styles.star.Render("★")
		}

		text := m.styles.text.Render(t.Text)
		if t.Completed {
			text = m.styles.done.Render(t.Text)
		}

		extras := make([]string, 0, 2)
		if t.DueDate != nil {
			label := todo.FormatDue(*t.DueDate, today)
			if t.Overdue(today) {
				extras = append(extras, m.styles.overdue.Render("overdue: "+label))
			} else {
				extras = append(extras, m.styles.due.Render(label))
			}
		}
		if t.Recurring {
			extras = append(extras, m.styles.recurring.Render("↻ daily"))
		}

		body := fmt.Sprintf("%s %s %s %s", cursor, checkbox, star, text)
		if len(extras) > 0 {
			body += " [" + strings.Join(extras, " | ") + "]"
		}

		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSummary() string {
	s := m.store.Summary()
	left := fmt.Sprintf("%s • %d %s left", m.store.Now().Format("Mon, Jan 2, 2006"), s.Remaining, plural(s.Remaining, "task", "tasks"))
	if s.HasCompleted {
		left += fmt.Sprintf(" • %s clear completed", m.cfg.Keys.Clear)
	}
	return m.styles.muted.Render(left)
}

func (m Model) renderForm() string {
	values := []string{m.form.text, m.form.due, m.form.recurring}
	var b strings.Builder
	for i, name := range formFields() {
		prefix := " "
		if i == m.form.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-40s : %s", prefix, name, val))
		if i < len(formFields())-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s star • %s repeat • %s edit • %s due • %s delete • %s clear • %s/%s filter • %s theme • %s quit",
		k.Up, k.Down, k.Add, keyLabel(k.Toggle), k.Star, k.Recurring, k.Edit, k.Due, k.Delete, k.Clear, k.NextFilter, k.PrevFilter, k.DarkMode, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

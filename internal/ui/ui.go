package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskmaster/internal/config"
	"taskmaster/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeDue
)

// addForm holds the fields of the add form while it is open.
type addForm struct {
	text      string
	due       string
	recurring string
	index     int
}

type Model struct {
	store      *todo.Store
	cfg        config.Config
	logger     *log.Logger
	styles     styles
	tasks      []todo.Task
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	statusErr  bool
	dark       bool
	confirmDel bool
	pendingDel *todo.Task
	form       *addForm
	editID     int64
}

func New(store *todo.Store, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = 256
	ti.Width = 40

	tasks := store.Visible()
	return Model{
		store:  store,
		cfg:    cfg,
		logger: logger,
		styles: newStyles(cfg.DarkMode),
		tasks:  tasks,
		cursor: clampCursor(0, len(tasks)),
		status: fmt.Sprintf("Press '%s' to add, space to toggle, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Delete),
		input:  ti,
		mode:   modeList,
		dark:   cfg.DarkMode,
	}
}

func Run(store *todo.Store, cfg config.Config, logger *log.Logger, firstLaunch bool) error {
	m := New(store, cfg, logger)
	if firstLaunch {
		m.status = "Welcome! Press '" + cfg.Keys.Add + "' to add your first task."
	}
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateAddMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeEdit:
		return m.updateEditMode(key, msg)
	case modeDue:
		return m.updateDueMode(key, msg)
	}
	return m.updateListMode(key)
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys
	switch key {
	case "ctrl+c", keys.Quit:
		return m, tea.Quit
	case keys.Down, "down":
		if len(m.tasks) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.tasks))
		}
	case keys.Add:
		return m.startAdd()
	case keys.Toggle:
		return m.mutateCurrent("Toggled task", m.store.ToggleCompleted)
	case keys.Star:
		return m.mutateCurrent("Toggled star", m.store.ToggleImportant)
	case keys.Recurring:
		return m.mutateCurrent("Toggled daily repeat", m.store.ToggleRecurring)
	case keys.Delete:
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.setStatus(fmt.Sprintf("Delete \"%s\"? y/n", t.Text))
	case keys.Edit:
		t, ok := m.current()
		if !ok {
			m.setStatus("No tasks to edit")
			return m, nil
		}
		m.editID = t.ID
		m.mode = modeEdit
		m.input.SetValue(t.Text)
		m.input.Placeholder = "Task text"
		m.input.Focus()
		m.setStatus("Edit text: Enter to save, Esc to cancel")
	case keys.Due:
		t, ok := m.current()
		if !ok {
			m.setStatus("No task selected")
			return m, nil
		}
		m.editID = t.ID
		m.mode = modeDue
		m.input.SetValue(formatDate(t.DueDate))
		m.input.Placeholder = "YYYY-MM-DD, today, tomorrow (empty clears)"
		m.input.Focus()
		m.setStatus("Due date: Enter to save, Esc to cancel")
	case keys.Clear:
		removed, err := m.store.ClearCompleted()
		m.reload(0)
		if err != nil {
			m.setError(fmt.Sprintf("save failed: %v", err))
			return m, nil
		}
		if removed == 0 {
			m.setStatus("No completed tasks")
		} else {
			m.setStatus(fmt.Sprintf("Cleared %d completed", removed))
		}
	case keys.NextFilter:
		m.selectFilter(m.store.Filter().Shift(1))
	case keys.PrevFilter:
		m.selectFilter(m.store.Filter().Shift(-1))
	case "1", "2", "3", "4", "5", "6":
		m.selectFilter(todo.Filters()[int(key[0]-'1')])
	case keys.DarkMode:
		m.dark = !m.dark
		m.styles = newStyles(m.dark)
		if m.dark {
			m.setStatus("Dark mode")
		} else {
			m.setStatus("Light mode")
		}
	}
	return m, nil
}

func (m *Model) selectFilter(f todo.Filter) {
	id, _ := m.currentID()
	m.store.SetFilter(f)
	m.reload(id)
	m.setStatus("Showing " + strings.ToLower(f.Title()) + " tasks")
}

// mutateCurrent applies op to the task under the cursor and keeps the cursor
// on that task after the list is re-sorted.
func (m Model) mutateCurrent(done string, op func(int64) error) (tea.Model, tea.Cmd) {
	id, ok := m.currentID()
	if !ok {
		return m, nil
	}
	err := op(id)
	m.reload(id)
	if err != nil {
		m.setError(fmt.Sprintf("save failed: %v", err))
		return m, nil
	}
	m.setStatus(done)
	return m, nil
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	m.form = &addForm{recurring: "n"}
	m.mode = modeAdd
	m.input.SetValue("")
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.setStatus(m.formPrompt())
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.setStatus("Cancelled")
		return m, nil
	case "tab", "down":
		m.moveFormField(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFormField(-1)
		return m, nil
	case "ctrl+s":
		m.form.setCurrentValue(m.input.Value())
		return m.saveAdd()
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(formFields())-1 {
			return m.saveAdd()
		}
		m.moveFormField(1)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) moveFormField(delta int) {
	m.form.setCurrentValue(m.input.Value())
	m.form.index = wrapIndex(m.form.index+delta, len(formFields()))
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.setStatus(m.formPrompt())
}

func (m *Model) jumpToField(index int) {
	m.form.index = index
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
}

func (m Model) saveAdd() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.form.text) == "" {
		m.jumpToField(0)
		m.setError("Text cannot be empty")
		return m, nil
	}
	due, err := todo.ParseDueInput(m.form.due, m.store.Today())
	if err != nil {
		m.jumpToField(1)
		m.setError(fmt.Sprintf("due date invalid: %v", err))
		return m, nil
	}

	task, added, err := m.store.Add(m.form.text, due, parseYN(m.form.recurring))
	m.form = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	if !added {
		m.setStatus("Nothing added")
		return m, nil
	}
	m.reload(task.ID)
	if err != nil {
		m.setError(fmt.Sprintf("save failed: %v", err))
		return m, nil
	}
	m.logger.Debug("task added from ui", "id", task.ID)
	m.setStatus("Added task")
	return m, nil
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		return m.leaveInput("Edit cancelled"), nil
	case m.cfg.Keys.Confirm, "enter":
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			m.setError("Text cannot be empty")
			return m, nil
		}
		id := m.editID
		err := m.store.SetText(id, text)
		m = m.leaveInput("Saved")
		m.reload(id)
		if err != nil {
			m.setError(fmt.Sprintf("save failed: %v", err))
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDueMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		return m.leaveInput("Due date unchanged"), nil
	case m.cfg.Keys.Confirm, "enter":
		due, err := todo.ParseDueInput(m.input.Value(), m.store.Today())
		if err != nil {
			m.setError(fmt.Sprintf("due date invalid: %v", err))
			return m, nil
		}
		id := m.editID
		err = m.store.SetDueDate(id, due)
		status := "Due date cleared"
		if due != nil {
			status = "Due " + todo.FormatDue(*due, m.store.Today())
		}
		m = m.leaveInput(status)
		m.reload(id)
		if err != nil {
			m.setError(fmt.Sprintf("save failed: %v", err))
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) leaveInput(status string) Model {
	m.mode = modeList
	m.editID = 0
	m.input.SetValue("")
	m.input.Blur()
	m.setStatus(status)
	return m
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.setStatus("Delete cancelled")
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.setStatus("Nothing to delete")
			m.confirmDel = false
			return m, nil
		}
		err := m.store.Remove(m.pendingDel.ID)
		m.confirmDel = false
		m.pendingDel = nil
		m.reload(0)
		if err != nil {
			m.setError(fmt.Sprintf("delete failed: %v", err))
			return m, nil
		}
		m.setStatus("Deleted task")
		return m, nil
	default:
		return m, nil
	}
}

// reload recomputes the visible list. When focus names a visible task the
// cursor follows it, otherwise the cursor is clamped in place.
func (m *Model) reload(focus int64) {
	m.tasks = m.store.Visible()
	if focus != 0 {
		for i, t := range m.tasks {
			if t.ID == focus {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.tasks))
}

func (m Model) current() (todo.Task, bool) {
	if len(m.tasks) == 0 {
		return todo.Task{}, false
	}
	return m.tasks[clampCursor(m.cursor, len(m.tasks))], true
}

func (m Model) currentID() (int64, bool) {
	t, ok := m.current()
	return t.ID, ok
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
	m.logger.Warn("ui action failed", "status", s)
}

func formFields() []string {
	return []string{"text", "due date (YYYY-MM-DD, today, tomorrow)", "repeat daily (y/n)"}
}

func (f addForm) currentLabel() string {
	return formFields()[f.index]
}

func (f addForm) currentValue() string {
	switch f.index {
	case 0:
		return f.text
	case 1:
		return f.due
	case 2:
		return f.recurring
	default:
		return ""
	}
}

func (f *addForm) setCurrentValue(v string) {
	switch f.index {
	case 0:
		f.text = v
	case 1:
		f.due = v
	case 2:
		f.recurring = v
	}
}

func (m Model) formPrompt() string {
	if m.form == nil {
		return ""
	}
	return fmt.Sprintf("New task: %s (field %d of %d). Enter to advance, ctrl+s to save, Esc to cancel.",
		m.form.currentLabel(), m.form.index+1, len(formFields()))
}

func parseYN(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes" || v == "true" || v == "1"
}

func formatDate(d *todo.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

package todo

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"taskmaster/internal/storage"
)

// Keys under which the store persists its state.
const (
	KeyTodos              = "todos"
	KeyLastRecurringCheck = "lastRecurringCheck"
)

// Clock supplies the current time. Every date-sensitive decision goes
// through it.
type Clock func() time.Time

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.now = c
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFilter sets the filter selected at startup.
func WithFilter(f Filter) Option {
	return func(s *Store) {
		s.filter = f
	}
}

// Store owns the task list and the selected filter. All mutation goes through
// its methods, and each applied mutation rewrites the whole list to the KV
// store before returning. A failed write is returned but the in-memory
// change is kept.
type Store struct {
	kv     storage.KV
	now    Clock
	logger *log.Logger
	tasks  []Task
	filter Filter
}

// Open hydrates a store from kv. A malformed task list is logged and
// replaced by an empty one.
func Open(kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     kv,
		now:    time.Now,
		logger: log.New(io.Discard),
		tasks:  []Task{},
		filter: FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := kv.Get(KeyTodos)
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	if ok && strings.TrimSpace(raw) != "" {
		var tasks []Task
		if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
			s.logger.Warn("stored todos are malformed, starting empty", "err", err)
		} else if tasks != nil {
			s.tasks = tasks
		}
	}
	s.logger.Debug("todos loaded", "count", len(s.tasks))
	return s, nil
}

func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Today() Date {
	return DateOf(s.now())
}

// Tasks returns a copy of the list in insertion order.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Get(id int64) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Filter() Filter {
	return s.filter
}

func (s *Store) SetFilter(f Filter) {
	s.filter = f
}

// Visible returns the tasks for the selected filter.
func (s *Store) Visible() []Task {
	return s.VisibleTasks(s.filter)
}

func (s *Store) VisibleTasks(f Filter) []Task {
	return VisibleTasks(s.tasks, f, s.Today())
}

func (s *Store) Summary() Summary {
	return Summarize(s.tasks)
}

// Add appends a new open task. Blank text is ignored and reported with
// added=false.
func (s *Store) Add(text string, due *Date, recurring bool) (task Task, added bool, err error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, false, nil
	}
	task = Task{
		ID:        s.nextID(),
		Text:      text,
		Recurring: recurring,
		DueDate:   copyDate(due),
	}
	s.tasks = append(s.tasks, task)
	s.logger.Debug("task added", "id", task.ID)
	return task, true, s.save()
}

func (s *Store) Remove(id int64) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return s.save()
}

func (s *Store) ToggleCompleted(id int64) error {
	return s.update(id, func(t *Task) {
		t.Completed = !t.Completed
	})
}

func (s *Store) ToggleImportant(id int64) error {
	return s.update(id, func(t *Task) {
		t.Important = !t.Important
	})
}

func (s *Store) ToggleRecurring(id int64) error {
	return s.update(id, func(t *Task) {
		t.Recurring = !t.Recurring
	})
}

// SetText replaces the text of a task. Blank text is ignored.
func (s *Store) SetText(id int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.update(id, func(t *Task) {
		t.Text = text
	})
}

// SetDueDate replaces the due date; nil clears it.
func (s *Store) SetDueDate(id int64, due *Date) error {
	return s.update(id, func(t *Task) {
		t.DueDate = copyDate(due)
	})
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted() (int, error) {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool { return t.Completed })
	removed := before - len(s.tasks)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save()
}

// Replace swaps the whole list, e.g. on import. Ids must be unique.
func (s *Store) Replace(tasks []Task) error {
	seen := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	s.tasks = append([]Task{}, tasks...)
	return s.save()
}

// reopenRecurring clears the completed flag on recurring tasks.
func (s *Store) reopenRecurring() (int, error) {
	reopened := 0
	for i := range s.tasks {
		if s.tasks[i].Recurring && s.tasks[i].Completed {
			s.tasks[i].Completed = false
			reopened++
		}
	}
	if reopened == 0 {
		return 0, nil
	}
	return reopened, s.save()
}

func (s *Store) update(id int64, fn func(*Task)) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	fn(&s.tasks[i])
	return s.save()
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// nextID is the creation time in epoch ms, bumped past the largest id in use.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func (s *Store) save() error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode todos: %w", err)
	}
	if err := s.kv.Set(KeyTodos, string(data)); err != nil {
		s.logger.Error("save todos failed", "err", err)
		return fmt.Errorf("save todos: %w", err)
	}
	return nil
}

func copyDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

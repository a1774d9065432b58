// Package todo holds the task list, its derived views, and the daily reset of
// recurring tasks.
package todo

import (
	"fmt"
	"slices"
	"strings"
)

type Task struct {
	ID        int64  `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	Important bool   `json:"important" yaml:"important"`
	Recurring bool   `json:"recurring" yaml:"recurring"`
	DueDate   *Date  `json:"dueDate" yaml:"dueDate"`
}

// Overdue reports a due date strictly before today on an open task.
func (t Task) Overdue(today Date) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(today)
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterImportant Filter = "important"
	FilterToday     Filter = "today"
	FilterUpcoming  Filter = "upcoming"
)

// Filters lists every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted, FilterImportant, FilterToday, FilterUpcoming}
}

func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Filters(), f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Title is the label shown on the filter tab.
func (f Filter) Title() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// Shift moves n steps through Filters, wrapping at both ends.
func (f Filter) Shift(n int) Filter {
	all := Filters()
	idx := slices.Index(all, f)
	if idx < 0 {
		idx = 0
	}
	idx = (idx + n) % len(all)
	if idx < 0 {
		idx += len(all)
	}
	return all[idx]
}

func (f Filter) Match(t Task, today Date) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterImportant:
		return t.Important
	case FilterToday:
		return t.Recurring || (t.DueDate != nil && t.DueDate.Equal(today))
	case FilterUpcoming:
		return t.DueDate != nil && t.DueDate.After(today)
	default:
		return true
	}
}

// VisibleTasks filters tasks and sorts the result: overdue first, then
// important, then dated before undated (earliest first), then recurring.
// Full ties keep input order. The input slice is not modified.
func VisibleTasks(tasks []Task, f Filter, today Date) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t, today) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b Task) int {
		if c := boolFirst(a.Overdue(today), b.Overdue(today)); c != 0 {
			return c
		}
		if c := boolFirst(a.Important, b.Important); c != 0 {
			return c
		}
		if c := compareDue(a.DueDate, b.DueDate); c != 0 {
			return c
		}
		return boolFirst(a.Recurring, b.Recurring)
	})
	return out
}

func boolFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

func compareDue(a, b *Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}

// Summary is the footer line under the list.
type Summary struct {
	Remaining    int
	HasCompleted bool
}

func Summarize(tasks []Task) Summary {
	var s Summary
	for _, t := range tasks {
		if t.Completed {
			s.HasCompleted = true
		} else {
			s.Remaining++
		}
	}
	return s
}

package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	today     = NewDate(2024, time.March, 15)
	yesterday = today.AddDays(-1)
	tomorrow  = today.AddDays(1)
)

func ids(tasks []Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func sampleTasks() []Task {
	return []Task{
		{ID: 1, Text: "plain"},
		{ID: 2, Text: "done", Completed: true},
		{ID: 3, Text: "starred", Important: true},
		{ID: 4, Text: "due today", DueDate: datePtr(today)},
		{ID: 5, Text: "due tomorrow", DueDate: datePtr(tomorrow)},
		{ID: 6, Text: "daily", Recurring: true},
		{ID: 7, Text: "overdue", DueDate: datePtr(yesterday)},
		{ID: 8, Text: "done overdue", Completed: true, DueDate: datePtr(yesterday)},
	}
}

func TestVisibleTasks_Filters(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		filter Filter
		want   []int64
	}{
		{FilterAll, []int64{7, 3, 8, 4, 5, 6, 1, 2}},
		{FilterActive, []int64{7, 3, 4, 5, 6, 1}},
		{FilterCompleted, []int64{8, 2}},
		{FilterImportant, []int64{3}},
		{FilterToday, []int64{4, 6}},
		{FilterUpcoming, []int64{5}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(VisibleTasks(tasks, tt.filter, today)))
		})
	}
}

func TestVisibleTasks_CompletedIsExactSubset(t *testing.T) {
	got := VisibleTasks(sampleTasks(), FilterCompleted, today)
	for _, task := range got {
		assert.True(t, task.Completed)
	}
	count := 0
	for _, task := range sampleTasks() {
		if task.Completed {
			count++
		}
	}
	assert.Len(t, got, count)
}

func TestVisibleTasks_OverdueBeforeTomorrow(t *testing.T) {
	tasks := []Task{
		{ID: 10, Text: "B", DueDate: datePtr(tomorrow)},
		{ID: 20, Text: "A", DueDate: datePtr(yesterday)},
	}
	assert.Equal(t, []int64{20, 10}, ids(VisibleTasks(tasks, FilterAll, today)))
}

func TestVisibleTasks_SortKeys(t *testing.T) {
	t.Run("overdue beats important", func(t *testing.T) {
		tasks := []Task{
			{ID: 1, Important: true},
			{ID: 2, DueDate: datePtr(yesterday)},
		}
		assert.Equal(t, []int64{2, 1}, ids(VisibleTasks(tasks, FilterAll, today)))
	})
	t.Run("completed past due is not overdue", func(t *testing.T) {
		tasks := []Task{
			{ID: 1, Completed: true, DueDate: datePtr(yesterday)},
			{ID: 2, Important: true},
		}
		assert.Equal(t, []int64{2, 1}, ids(VisibleTasks(tasks, FilterAll, today)))
	})
	t.Run("important beats due date", func(t *testing.T) {
		tasks := []Task{
			{ID: 1, DueDate: datePtr(today)},
			{ID: 2, Important: true},
		}
		assert.Equal(t, []int64{2, 1}, ids(VisibleTasks(tasks, FilterAll, today)))
	})
	t.Run("earlier due first and dated before undated", func(t *testing.T) {
		tasks := []Task{
			{ID: 1},
			{ID: 2, DueDate: datePtr(today.AddDays(9))},
			{ID: 3, DueDate: datePtr(tomorrow)},
		}
		assert.Equal(t, []int64{3, 2, 1}, ids(VisibleTasks(tasks, FilterAll, today)))
	})
	t.Run("recurring breaks remaining ties", func(t *testing.T) {
		tasks := []Task{
			{ID: 1},
			{ID: 2, Recurring: true},
		}
		assert.Equal(t, []int64{2, 1}, ids(VisibleTasks(tasks, FilterAll, today)))
	})
}

func TestVisibleTasks_StableOnTies(t *testing.T) {
	tasks := []Task{
		{ID: 5, Important: true, DueDate: datePtr(tomorrow)},
		{ID: 3, Important: true, DueDate: datePtr(tomorrow)},
		{ID: 9, Important: true, DueDate: datePtr(tomorrow)},
		{ID: 1},
		{ID: 4},
	}
	assert.Equal(t, []int64{5, 3, 9, 1, 4}, ids(VisibleTasks(tasks, FilterAll, today)))
}

func TestVisibleTasks_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	_ = VisibleTasks(tasks, FilterAll, today)
	assert.Equal(t, sampleTasks(), tasks)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" Upcoming ")
	require.NoError(t, err)
	assert.Equal(t, FilterUpcoming, f)

	_, err = ParseFilter("someday")
	assert.Error(t, err)
}

func TestFilter_Shift(t *testing.T) {
	assert.Equal(t, FilterActive, FilterAll.Shift(1))
	assert.Equal(t, FilterUpcoming, FilterAll.Shift(-1))
	assert.Equal(t, FilterAll, FilterUpcoming.Shift(1))
	assert.Equal(t, "Important", FilterImportant.Title())
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{Remaining: 6, HasCompleted: true}, Summarize(sampleTasks()))
	assert.Equal(t, Summary{}, Summarize(nil))
}

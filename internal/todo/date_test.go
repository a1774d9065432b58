package todo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesLocalDay(t *testing.T) {
	zone := time.FixedZone("UTC+9", 9*60*60)
	// 2024-03-15 20:00 UTC is already the 16th at UTC+9.
	instant := time.Date(2024, time.March, 15, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, NewDate(2024, time.March, 15), DateOf(instant))
	assert.Equal(t, NewDate(2024, time.March, 16), DateOf(instant.In(zone)))
}

func TestDate_Compare(t *testing.T) {
	assert.True(t, yesterday.Before(today))
	assert.True(t, tomorrow.After(today))
	assert.True(t, today.Equal(NewDate(2024, time.March, 15)))
	assert.Equal(t, -1, yesterday.Compare(today))
	assert.Equal(t, NewDate(2024, time.April, 1), NewDate(2024, time.March, 31).AddDays(1))
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due *Date `json:"dueDate"`
	}

	data, err := json.Marshal(wrapper{Due: datePtr(today)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dueDate":"2024-03-15"}`, string(data))

	data, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dueDate":null}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2024-03-16T00:00:00.000Z"}`), &w))
	require.NotNil(t, w.Due)
	assert.Equal(t, tomorrow, *w.Due)

	w = wrapper{}
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &w))
	assert.Nil(t, w.Due)

	assert.Error(t, json.Unmarshal([]byte(`{"dueDate":"soon"}`), &w))
}

func TestParseDueInput(t *testing.T) {
	d, err := ParseDueInput("  ", today)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDueInput("Today", today)
	require.NoError(t, err)
	assert.Equal(t, today, *d)

	d, err = ParseDueInput("tomorrow", today)
	require.NoError(t, err)
	assert.Equal(t, tomorrow, *d)

	d, err = ParseDueInput("2024-12-24", today)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.December, 24), *d)

	_, err = ParseDueInput("24/12/2024", today)
	assert.Error(t, err)
}

func TestFormatDue(t *testing.T) {
	assert.Equal(t, "Today", FormatDue(today, today))
	assert.Equal(t, "Tomorrow", FormatDue(tomorrow, today))
	assert.Equal(t, "Thu, Mar 14, 2024", FormatDue(yesterday, today))
	assert.Equal(t, "Wed, Dec 25, 2024", FormatDue(NewDate(2024, time.December, 25), today))
}

func TestTask_Overdue(t *testing.T) {
	assert.True(t, Task{DueDate: datePtr(yesterday)}.Overdue(today))
	assert.False(t, Task{DueDate: datePtr(yesterday), Completed: true}.Overdue(today))
	assert.False(t, Task{DueDate: datePtr(today)}.Overdue(today))
	assert.False(t, Task{}.Overdue(today))
}

package todo

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResetResult describes one run of the recurrence check.
type ResetResult struct {
	Reset    bool
	Reopened int
	Day      time.Time
}

// RecurrenceResetter reopens completed recurring tasks once per calendar day.
// The day of the last reset is kept under KeyLastRecurringCheck as the epoch
// milliseconds of that day's local midnight.
type RecurrenceResetter struct {
	store *Store
}

func NewRecurrenceResetter(store *Store) *RecurrenceResetter {
	return &RecurrenceResetter{store: store}
}

// Run performs the check. Meant to be called once at startup; further calls
// on the same day change nothing.
func (r *RecurrenceResetter) Run() (ResetResult, error) {
	s := r.store
	now := s.now()
	midnight := DateOf(now).Midnight(now.Location())
	res := ResetResult{Day: midnight}

	raw, ok, err := s.kv.Get(KeyLastRecurringCheck)
	if err != nil {
		return res, fmt.Errorf("load last recurring check: %w", err)
	}
	if ok {
		last, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		switch {
		case perr != nil:
			s.logger.Warn("last recurring check is unreadable, resetting", "value", raw)
		case last >= midnight.UnixMilli():
			return res, nil
		}
	}

	reopened, err := s.reopenRecurring()
	if err != nil {
		return res, err
	}
	if err := s.kv.Set(KeyLastRecurringCheck, strconv.FormatInt(midnight.UnixMilli(), 10)); err != nil {
		s.logger.Error("save last recurring check failed", "err", err)
		return res, fmt.Errorf("save last recurring check: %w", err)
	}
	res.Reset = true
	res.Reopened = reopened
	s.logger.Info("recurring tasks reset", "reopened", reopened, "day", DateOf(now))
	return res, nil
}

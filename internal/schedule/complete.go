package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrNotScheduled is returned by Complete when (account, task) has no entry.
	ErrNotScheduled = errors.New("task not scheduled for account")
	// ErrUnknownTask is returned by Complete when the task is missing from the
	// catalog.
	ErrUnknownTask = errors.New("task not in catalog")
)

// Complete marks (account, task) done on today and moves its due date to
// today plus the task's current catalog interval. The previous due date is
// not consulted.
//
// A task whose interval is zero is retired: its entry is removed and the
// zero Date is returned.
func Complete(cat Catalog, st *Store, account, task string, today Date) (Date, error) {
	if _, ok := st.Get(account, task); !ok {
		return Date{}, fmt.Errorf("%w: %s/%s", ErrNotScheduled, account, task)
	}
	interval, ok := cat.Interval(task)
	if !ok {
		return Date{}, fmt.Errorf("%w: %s", ErrUnknownTask, task)
	}
	if interval == IntervalRetired {
		st.Delete(account, task)
		return Date{}, nil
	}
	next := today.AddDays(interval)
	st.Set(account, task, next)
	return next, nil
}

package schedule

import (
	"fmt"
	"sort"
)

// Interval semantics.
const (
	// IntervalRetired removes every instance of the task on the next reconcile.
	IntervalRetired = 0
	// IntervalDaily is always scheduled for today, never jittered.
	IntervalDaily = 1
)

// Catalog is the configured set of tasks plus the account count.
// It is read-only for the duration of a run.
type Catalog struct {
	TotalAccounts int
	// Intervals maps task name to repeat interval in days.
	Intervals map[string]int
}

// AccountID formats a 1-based account index as a zero-padded id ("001").
func AccountID(i int) string { return fmt.Sprintf("%03d", i) }

// AccountIDs returns the ids of every configured account, in order.
func (c Catalog) AccountIDs() []string {
	if c.TotalAccounts <= 0 {
		return nil
	}
	out := make([]string, 0, c.TotalAccounts)
	for i := 1; i <= c.TotalAccounts; i++ {
		out = append(out, AccountID(i))
	}
	return out
}

// Interval returns the configured interval for task.
func (c Catalog) Interval(task string) (int, bool) {
	d, ok := c.Intervals[task]
	return d, ok
}

// Has reports whether task is in the catalog, retired or not.
func (c Catalog) Has(task string) bool {
	_, ok := c.Intervals[task]
	return ok
}

// TaskNames returns the configured task names in sorted order.
func (c Catalog) TaskNames() []string {
	out := make([]string, 0, len(c.Intervals))
	for name := range c.Intervals {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Validate rejects negative counts and intervals.
func (c Catalog) Validate() error {
	if c.TotalAccounts < 0 {
		return fmt.Errorf("total_account must be >= 0 (got %d)", c.TotalAccounts)
	}
	for _, name := range c.TaskNames() {
		if d := c.Intervals[name]; d < 0 {
			return fmt.Errorf("task %q: interval must be >= 0 (got %d)", name, d)
		}
	}
	return nil
}

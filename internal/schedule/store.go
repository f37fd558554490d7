package schedule

import "sort"

// Store maps account id -> task name -> due date.
//
// Store does no validation of its own; Reconcile is what keeps it consistent
// with a Catalog. The zero value is not usable, call NewStore.
type Store struct {
	accounts map[string]map[string]Date
}

func NewStore() *Store {
	return &Store{accounts: map[string]map[string]Date{}}
}

// Get returns the due date of (account, task).
func (s *Store) Get(account, task string) (Date, bool) {
	tasks, ok := s.accounts[account]
	if !ok {
		return Date{}, false
	}
	d, ok := tasks[task]
	return d, ok
}

// Set inserts or replaces the due date of (account, task).
func (s *Store) Set(account, task string, due Date) {
	tasks := s.accounts[account]
	if tasks == nil {
		tasks = map[string]Date{}
		s.accounts[account] = tasks
	}
	tasks[task] = due
}

// Delete removes (account, task) and reports whether it existed.
// The account itself is kept even when it has no tasks left.
func (s *Store) Delete(account, task string) bool {
	tasks, ok := s.accounts[account]
	if !ok {
		return false
	}
	if _, ok := tasks[task]; !ok {
		return false
	}
	delete(tasks, task)
	return true
}

// AddAccount registers an account with no tasks. It is a no-op if the
// account already exists.
func (s *Store) AddAccount(account string) {
	if _, ok := s.accounts[account]; !ok {
		s.accounts[account] = map[string]Date{}
	}
}

// Accounts returns every account id in sorted order, including accounts
// without tasks.
func (s *Store) Accounts() []string {
	out := make([]string, 0, len(s.accounts))
	for a := range s.accounts {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Tasks returns the task names of account in sorted order.
func (s *Store) Tasks(account string) []string {
	tasks := s.accounts[account]
	out := make([]string, 0, len(tasks))
	for t := range tasks {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of (account, task) entries.
func (s *Store) Len() int {
	n := 0
	for _, tasks := range s.accounts {
		n += len(tasks)
	}
	return n
}

// Snapshot returns a deep copy of the entries.
func (s *Store) Snapshot() map[string]map[string]Date {
	out := make(map[string]map[string]Date, len(s.accounts))
	for a, tasks := range s.accounts {
		cp := make(map[string]Date, len(tasks))
		for t, d := range tasks {
			cp[t] = d
		}
		out[a] = cp
	}
	return out
}

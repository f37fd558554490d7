// Package schedule keeps one due date per (account, task) pair.
//
// A Catalog describes the configured tasks (name -> repeat interval in days)
// and how many accounts exist. A Store holds the due dates. Reconcile aligns a
// Store with a Catalog, DueAccounts/DueTasks select what is due on a day, and
// Complete moves a finished task forward by its interval.
//
// Nothing in this package touches the filesystem or the clock: callers pass
// the current day and a Rand explicitly.
package schedule

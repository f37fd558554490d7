package config

import (
	"sort"

	logx "ctask/pkg/logx"
)

// JobChange describes how the job section differs between two documents.
type JobChange struct {
	AccountsBefore int
	AccountsAfter  int
	Added          []string
	Removed        []string
	// Retuned lists tasks whose interval changed (including to 0).
	Retuned []string
}

func (c JobChange) Empty() bool {
	return c.AccountsBefore == c.AccountsAfter && len(c.Added)+len(c.Removed)+len(c.Retuned) == 0
}

// DiffJob compares the job sections of two documents.
// A nil document is treated as the default one.
func DiffJob(oldDoc, newDoc *Document) JobChange {
	if oldDoc == nil {
		oldDoc = Default()
	}
	if newDoc == nil {
		newDoc = Default()
	}

	c := JobChange{
		AccountsBefore: oldDoc.Job.TotalAccount,
		AccountsAfter:  newDoc.Job.TotalAccount,
	}
	for name, d := range newDoc.Job.Tasks {
		prev, ok := oldDoc.Job.Tasks[name]
		switch {
		case !ok:
			c.Added = append(c.Added, name)
		case prev != d:
			c.Retuned = append(c.Retuned, name)
		}
	}
	for name := range oldDoc.Job.Tasks {
		if _, ok := newDoc.Job.Tasks[name]; !ok {
			c.Removed = append(c.Removed, name)
		}
	}
	sort.Strings(c.Added)
	sort.Strings(c.Removed)
	sort.Strings(c.Retuned)
	return c
}

// Fields returns structured log attrs for the change.
func (c JobChange) Fields() []logx.Field {
	attrs := make([]logx.Field, 0, 5)
	if c.AccountsBefore != c.AccountsAfter {
		attrs = append(attrs,
			logx.Int("total_account.before", c.AccountsBefore),
			logx.Int("total_account.after", c.AccountsAfter),
		)
	}
	if len(c.Added) > 0 {
		attrs = append(attrs, logx.Any("tasks.added", c.Added))
	}
	if len(c.Removed) > 0 {
		attrs = append(attrs, logx.Any("tasks.removed", c.Removed))
	}
	if len(c.Retuned) > 0 {
		attrs = append(attrs, logx.Any("tasks.retuned", c.Retuned))
	}
	return attrs
}

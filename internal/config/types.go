package config

import (
	"errors"
	"fmt"

	"ctask/internal/schedule"
)

// ErrInvalid wraps every schema violation found in a state document.
var ErrInvalid = errors.New("invalid state document")

// Document is the persisted state: the task catalog plus the full schedule.
//
// Example:
//
//	{
//	  "job": { "total_account": 2, "tasks": { "water": 3 } },
//	  "task_list": { "001": { "water": { "start_time": "2024-01-03" } } }
//	}
type Document struct {
	Job      Job                         `json:"job" yaml:"job"`
	TaskList map[string]map[string]Entry `json:"task_list" yaml:"task_list"`
}

// Job is the task catalog section.
type Job struct {
	TotalAccount int `json:"total_account" yaml:"total_account"`
	// Tasks maps task name to repeat interval in days.
	// 0 retires the task, 1 means daily.
	Tasks map[string]int `json:"tasks" yaml:"tasks"`
}

// Entry is one scheduled (account, task) pair.
type Entry struct {
	// StartTime is the next due date, YYYY-MM-DD.
	StartTime string `json:"start_time" yaml:"start_time"`
}

// Default returns the document written into a new or empty state file.
func Default() *Document {
	return &Document{
		Job:      Job{TotalAccount: 0, Tasks: map[string]int{}},
		TaskList: map[string]map[string]Entry{},
	}
}

// Catalog returns the task catalog view of the document.
func (d *Document) Catalog() schedule.Catalog {
	tasks := make(map[string]int, len(d.Job.Tasks))
	for k, v := range d.Job.Tasks {
		tasks[k] = v
	}
	return schedule.Catalog{TotalAccounts: d.Job.TotalAccount, Intervals: tasks}
}

// Store builds a schedule store from task_list.
func (d *Document) Store() (*schedule.Store, error) {
	st := schedule.NewStore()
	for account, tasks := range d.TaskList {
		st.AddAccount(account)
		for task, e := range tasks {
			due, err := schedule.ParseDate(e.StartTime)
			if err != nil {
				return nil, fmt.Errorf("%w: task_list.%s.%s.start_time: %v", ErrInvalid, account, task, err)
			}
			st.Set(account, task, due)
		}
	}
	return st, nil
}

// SetStore replaces task_list with the contents of st.
func (d *Document) SetStore(st *schedule.Store) {
	list := make(map[string]map[string]Entry)
	for _, account := range st.Accounts() {
		tasks := make(map[string]Entry)
		for _, task := range st.Tasks(account) {
			due, _ := st.Get(account, task)
			tasks[task] = Entry{StartTime: due.String()}
		}
		list[account] = tasks
	}
	d.TaskList = list
}

// Validate checks the document against the schema rules that JSON decoding
// alone cannot express.
func (d *Document) Validate() error {
	if err := d.Catalog().Validate(); err != nil {
		return fmt.Errorf("%w: job: %v", ErrInvalid, err)
	}
	for account, tasks := range d.TaskList {
		if account == "" {
			return fmt.Errorf("%w: task_list: empty account id", ErrInvalid)
		}
		for task := range tasks {
			if task == "" {
				return fmt.Errorf("%w: task_list.%s: empty task name", ErrInvalid, account)
			}
		}
	}
	if _, err := d.Store(); err != nil {
		return err
	}
	return nil
}

func (d *Document) normalize() {
	if d.Job.Tasks == nil {
		d.Job.Tasks = map[string]int{}
	}
	if d.TaskList == nil {
		d.TaskList = map[string]map[string]Entry{}
	}
	for account, tasks := range d.TaskList {
		if tasks == nil {
			d.TaskList[account] = map[string]Entry{}
		}
	}
}

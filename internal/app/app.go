package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"ctask/internal/config"
	"ctask/internal/recheck"
	"ctask/internal/schedule"
	"ctask/internal/storage"
	logx "ctask/pkg/logx"
)

const (
	promptAccount = "Select account"
	promptTask    = "Select task"
)

// Prompter shows a single-choice menu. ok is false when the user cancels.
type Prompter interface {
	Select(ctx context.Context, prompt string, items []string) (idx int, ok bool, err error)
}

// Options tunes an App. Zero values fall back to defaults.
type Options struct {
	// Recheck decides how long to wait when nothing is due. Default 1h.
	Recheck recheck.Spec
	// Watch reloads the state when it is edited externally (file driver only).
	Watch bool
	// Now is the clock. Default time.Now.
	Now func() time.Time
	// Rand draws initial jitter. Default schedule.NewRand().
	Rand schedule.Rand
	// Out receives the idle message. Default stdout.
	Out io.Writer
}

// App drives one interactive session over a store.
type App struct {
	log    logx.Logger
	store  storage.Store
	prompt Prompter
	opts   Options

	doc   *config.Document
	cat   schedule.Catalog
	sched *schedule.Store

	changes chan struct{}
}

func New(store storage.Store, prompt Prompter, log logx.Logger, opts Options) *App {
	if log.IsZero() {
		log = logx.Nop()
	}
	if opts.Recheck.Source == "" {
		opts.Recheck = recheck.MustParse(recheck.Default)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = schedule.NewRand()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &App{
		log:     log.With(logx.String("comp", "app")),
		store:   store,
		prompt:  prompt,
		opts:    opts,
		changes: make(chan struct{}, 1),
	}
}

func (a *App) today() schedule.Date { return schedule.DateOf(a.opts.Now()) }

// Run loads and reconciles the state, then serves menus until ctx is done
// or the user cancels account selection (ErrCanceled).
func (a *App) Run(ctx context.Context) error {
	if err := a.Bootstrap(ctx); err != nil {
		return err
	}

	if w, ok := a.store.(storage.Watcher); ok && a.opts.Watch {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := w.Watch(wctx, a.notifyChange); err != nil {
				a.log.Warn("state watcher exited", logx.Err(err))
			}
		}()
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := a.applyPendingChange(ctx); err != nil {
			return err
		}

		accounts := a.sched.DueAccounts(a.today())
		if len(accounts) == 0 {
			if err := a.idle(ctx); err != nil {
				return err
			}
			continue
		}

		idx, ok, err := a.prompt.Select(ctx, promptAccount, accounts)
		if err != nil {
			return ctxOr(ctx, fmt.Errorf("account prompt: %w", err))
		}
		if !ok {
			return ErrCanceled
		}
		if err := a.serveAccount(ctx, accounts[idx]); err != nil {
			return ctxOr(ctx, err)
		}
	}
}

// serveAccount prompts for the account's due tasks until none are left or
// the user backs out.
func (a *App) serveAccount(ctx context.Context, account string) error {
	log := a.log.With(logx.String("account", account))
	for {
		if _, err := a.applyPendingChange(ctx); err != nil {
			return err
		}
		tasks := a.sched.DueTasks(account, a.today())
		if len(tasks) == 0 {
			return nil
		}

		idx, ok, err := a.prompt.Select(ctx, promptTask, tasks)
		if err != nil {
			return fmt.Errorf("task prompt: %w", err)
		}
		if !ok {
			log.Debug("task selection canceled; back to accounts")
			return nil
		}

		task := tasks[idx]
		// The state may have been edited while the menu was open.
		reloaded, err := a.applyPendingChange(ctx)
		if err != nil {
			return err
		}
		if reloaded && !slices.Contains(a.sched.DueTasks(account, a.today()), task) {
			log.Info("task no longer due after reload", logx.String("task", task))
			continue
		}

		next, err := a.Complete(ctx, account, task)
		if err != nil {
			return err
		}
		if next.IsZero() {
			log.Info("task retired", logx.String("task", task))
			continue
		}
		log.Info("task completed", logx.String("task", task), logx.String("next_due", next.String()))
	}
}

// ctxOr prefers nil when the failure was caused by ctx being canceled.
func ctxOr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}

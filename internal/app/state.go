package app

import (
	"context"
	"fmt"

	"ctask/internal/config"
	"ctask/internal/schedule"
	logx "ctask/pkg/logx"
)

// Bootstrap loads the document, reconciles it and persists the result.
func (a *App) Bootstrap(ctx context.Context) error {
	doc, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if err := a.adopt(doc); err != nil {
		return err
	}
	return a.Reconcile(ctx)
}

// adopt makes doc the in-memory state.
func (a *App) adopt(doc *config.Document) error {
	st, err := doc.Store()
	if err != nil {
		return err
	}
	a.doc = doc
	a.cat = doc.Catalog()
	a.sched = st
	return nil
}

// Reconcile aligns the schedule with the catalog and persists once.
func (a *App) Reconcile(ctx context.Context) error {
	rep := schedule.Reconcile(a.cat, a.sched, a.today(), a.opts.Rand)
	if rep.Changed() {
		a.log.Info("schedule reconciled",
			logx.Int("added", rep.Added),
			logx.Int("pruned", rep.Pruned),
			logx.Int("retired", rep.Retired),
		)
	}
	if len(rep.StaleAccounts) > 0 {
		a.log.Info("accounts above total_account keep their schedule",
			logx.Int("total_account", a.cat.TotalAccounts),
			logx.Strs("accounts", rep.StaleAccounts),
		)
	}
	return a.persist(ctx)
}

// Complete reschedules (account, task) and persists once.
func (a *App) Complete(ctx context.Context, account, task string) (schedule.Date, error) {
	next, err := schedule.Complete(a.cat, a.sched, account, task, a.today())
	if err != nil {
		return schedule.Date{}, err
	}
	return next, a.persist(ctx)
}

func (a *App) persist(ctx context.Context) error {
	a.doc.SetStore(a.sched)
	if err := a.store.Save(ctx, a.doc); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Schedule exposes the in-memory schedule.
func (a *App) Schedule() *schedule.Store { return a.sched }

// Document returns the document as last persisted.
func (a *App) Document() *config.Document { return a.doc }

// reload re-reads the store after an external edit, then reconciles.
func (a *App) reload(ctx context.Context) error {
	doc, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload state: %w", err)
	}
	if c := config.DiffJob(a.doc, doc); !c.Empty() {
		a.log.Info("job configuration changed", c.Fields()...)
	}
	if err := a.adopt(doc); err != nil {
		return err
	}
	return a.Reconcile(ctx)
}

package app

import (
	"context"
	"fmt"
	"time"

	logx "ctask/pkg/logx"
)

// notifyChange records an external edit. It never blocks.
func (a *App) notifyChange() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// applyPendingChange reloads the state if an external edit was reported.
// It reports whether a reload happened.
func (a *App) applyPendingChange(ctx context.Context) (bool, error) {
	select {
	case <-a.changes:
		return true, a.reload(ctx)
	default:
		return false, nil
	}
}

// idle waits until the next re-check, an external edit, or ctx is done.
func (a *App) idle(ctx context.Context) error {
	now := a.opts.Now()
	wait := a.opts.Recheck.Wait(now)
	fmt.Fprintf(a.opts.Out, "No tasks due. Next check at %s. Press Ctrl+C to quit.\n",
		now.Add(wait).Format("2006-01-02 15:04"))
	a.log.Debug("idle", logx.Duration("wait", wait), logx.String("recheck", a.opts.Recheck.String()))

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return nil
	case <-t.C:
		return nil
	case <-a.changes:
		return a.reload(ctx)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"ctask/internal/app"
	"ctask/internal/config"
	"ctask/internal/recheck"
	"ctask/internal/tui"
	logx "ctask/pkg/logx"
)

type runCmd struct {
	Recheck string `help:"When nothing is due, wait for this schedule before checking again (duration, HH:MM or cron)." default:"1h"`
	NoWatch bool   `help:"Do not reload the state file when it is edited externally."`
}

func (c *runCmd) Run(ctx context.Context, g *Globals, log logx.Logger) error {
	spec, err := recheck.Parse(c.Recheck)
	if err != nil {
		return fmt.Errorf("--recheck: %w", err)
	}
	st, err := g.openStore(log)
	if err != nil {
		return err
	}
	defer st.Close()

	a := app.New(st, tui.NewPrompter(), log, app.Options{
		Recheck: spec,
		Watch:   !c.NoWatch,
	})
	err = a.Run(ctx)
	reason := app.ReasonFor(err)
	if reason.Graceful() {
		log.Info("stopped", logx.String("reason", reason.String()))
		return nil
	}
	return err
}

type exportCmd struct {
	Format string `help:"Output format." enum:"json,yaml" default:"json"`
}

func (c *exportCmd) Run(ctx context.Context, g *Globals, log logx.Logger) error {
	st, err := g.openStore(log)
	if err != nil {
		return err
	}
	defer st.Close()

	a := app.New(st, nil, log, app.Options{})
	if err := a.Bootstrap(ctx); err != nil {
		return err
	}
	b, err := config.Encode(config.Format(c.Format), a.Document())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(logx.Stdout(), string(b))
	return err
}

type importCmd struct {
	File string `arg:"" help:"Document to import (.json, .yaml or .yml)." type:"existingfile"`
}

func (c *importCmd) Run(ctx context.Context, g *Globals, log logx.Logger) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	doc, err := config.Decode(config.FormatFor(c.File), data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	st, err := g.openStore(log)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Save(ctx, doc); err != nil {
		return err
	}

	a := app.New(st, nil, log, app.Options{})
	if err := a.Bootstrap(ctx); err != nil {
		return err
	}
	log.Info("state imported", logx.String("from", c.File), logx.Int("entries", a.Schedule().Len()))
	return nil
}

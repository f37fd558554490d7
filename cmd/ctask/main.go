package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	logx "ctask/pkg/logx"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type CLI struct {
	Globals

	Run    runCmd    `cmd:"" default:"1" help:"Reconcile the schedule and walk through today's due tasks (default)."`
	Export exportCmd `cmd:"" help:"Print the reconciled state document."`
	Import importCmd `cmd:"" help:"Replace the state with a JSON or YAML document, then reconcile."`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("ctask"),
		kong.Description("Recurring per-account task scheduler."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	logs, log := cli.Globals.logger()
	defer logs.Close()

	if err := kctx.Run(&cli.Globals, log); err != nil {
		log.Error("fatal", logx.Err(err))
		fmt.Fprintln(logx.Stderr(), "fatal:", err)
		_ = logs.Close()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"shipit.dev/shipit/internal/cli"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Cancelling the context kills the in-flight git command
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cli.NewRootCmd(version, commit, date)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil && !shipiterrors.IsDeclined(err) {
		splog := tui.NewSplogWithWriter(os.Stderr, false)
		splog.Error("%v", err)
		if errors.Is(err, tui.ErrInteractiveDisabled) {
			splog.Tip("Pass --yes to release without prompts")
		}
	}
	os.Exit(shipiterrors.ExitCode(err))
}

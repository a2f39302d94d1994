// Package main provides the entry point for the gt CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gittrack/gt/internal/cli"
)

// Build information set via ldflags.
//
//nolint:gochecknoglobals // Build-time variables
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.Execute(ctx, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	stop()
	os.Exit(cli.ExitCodeForError(err))
}

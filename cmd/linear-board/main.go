package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roeyazroel/linear-board/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.BuildInfo{Version: Version, Commit: Commit, Date: Date})
	stop()
	os.Exit(code)
}

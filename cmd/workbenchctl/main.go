// Command workbenchctl runs maintenance tasks against a workbench backend.
//
// Usage:
//
//	workbenchctl migrate up|down|status
//	workbenchctl cleanup-tokens
//	workbenchctl reindex
//
// Configuration is read the same way as the server (CONFIG_PATH or env).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/workbench-backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

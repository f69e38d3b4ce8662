// Command wikiedits prints Wikimedia edit statistics
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

// Command writeassist runs the writing assistant API and its operator tooling.
//
// Usage:
//
//	writeassist serve --config=config.yaml
//	writeassist migrate up
//	writeassist token --user=<uuid>
//	writeassist assist --file=draft.txt --action=rewrite --tone=casual --write
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine: production reads the real environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

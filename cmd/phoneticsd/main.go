// Command phoneticsd runs the transcription service: it connects to the
// database, applies migrations, loads the engine resources, and stays up
// until interrupted.
//
// Configuration comes from CONFIG_PATH (fallback ./config.yaml) plus
// environment variables; DATABASE_DSN is required.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/phonetics-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("phoneticsd: %v", err)
	}
}

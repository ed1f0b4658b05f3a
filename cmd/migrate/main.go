// Command migrate applies the embedded database migrations.
//
// Usage: migrate [up|down|status]. The default is up.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/app"
	"github.com/heartmarshall/formcraft-backend/internal/config"
)

func main() {
	cfg, err := config.LoadSections(0)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	direction := app.MigrateUp
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Migrate(ctx, cfg.Database.DSN, direction, logger); err != nil {
		logger.Error("migrate failed",
			slog.String("direction", direction),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

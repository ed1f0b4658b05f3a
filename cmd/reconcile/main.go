// Command reconcile runs a single lifecycle sweep: it deactivates expired
// forms, enforces response limits when enabled and removes stale pending
// records. It is intended to be invoked by an external cron job when the
// in-process reconciler is disabled.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/adapter/postgres"
	formrepo "github.com/heartmarshall/formcraft-backend/internal/adapter/postgres/form"
	userrepo "github.com/heartmarshall/formcraft-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/formcraft-backend/internal/adapter/provider/google"
	"github.com/heartmarshall/formcraft-backend/internal/app"
	"github.com/heartmarshall/formcraft-backend/internal/config"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/service/credential"
	"github.com/heartmarshall/formcraft-backend/internal/service/lifecycle"
)

func main() {
	cfg, err := config.LoadSections(config.SectionGoogle | config.SectionReconciler)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timeout := cfg.Reconciler.SweepTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	verifier := google.NewVerifier(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURI, logger)
	formsClient := google.NewFormsClient(cfg.Forms.APIBaseURL, cfg.Forms.RequestTimeout, verifier, logger)

	reconciler := lifecycle.NewReconciler(logger,
		formrepo.New(pool),
		credential.NewService(logger, userrepo.New(pool)),
		func(c domain.Credential) lifecycle.Session { return formsClient.Session(c) },
		cfg.Reconciler)

	if _, err := reconciler.Sweep(ctx); err != nil {
		logger.Error("sweep failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/formcraft-backend/internal/adapter/llm"
	"github.com/heartmarshall/formcraft-backend/internal/adapter/postgres"
	formrepo "github.com/heartmarshall/formcraft-backend/internal/adapter/postgres/form"
	userrepo "github.com/heartmarshall/formcraft-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/formcraft-backend/internal/adapter/provider/google"
	"github.com/heartmarshall/formcraft-backend/internal/auth"
	"github.com/heartmarshall/formcraft-backend/internal/config"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
	authsvc "github.com/heartmarshall/formcraft-backend/internal/service/auth"
	"github.com/heartmarshall/formcraft-backend/internal/service/credential"
	"github.com/heartmarshall/formcraft-backend/internal/service/form"
	"github.com/heartmarshall/formcraft-backend/internal/service/intent"
	"github.com/heartmarshall/formcraft-backend/internal/service/lifecycle"
	"github.com/heartmarshall/formcraft-backend/internal/service/structure"
	"github.com/heartmarshall/formcraft-backend/internal/transport/middleware"
	"github.com/heartmarshall/formcraft-backend/internal/transport/rest"
)

// Server is the assembled application: the HTTP handler and the lifecycle
// reconciler, both bound to one database pool.
type Server struct {
	Handler    http.Handler
	Reconciler *lifecycle.Reconciler
}

// New wires repositories, adapters, services and handlers.
func New(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Server, error) {
	users := userrepo.New(pool)
	forms := formrepo.New(pool)

	gen, err := llm.New(ctx, llm.Options{
		Provider:       cfg.LLM.Provider,
		APIKey:         cfg.LLM.APIKey,
		Model:          cfg.LLM.Model,
		BaseURL:        cfg.LLM.BaseURL,
		RequestTimeout: cfg.LLM.RequestTimeout,
		RetryAttempts:  cfg.LLM.RetryAttempts,
		RetryBaseDelay: cfg.LLM.RetryBaseDelay,
		CacheSize:      cfg.LLM.CacheSize,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("text generation backend: %w", err)
	}

	verifier := google.NewVerifier(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURI, logger)
	formsClient := google.NewFormsClient(cfg.Forms.APIBaseURL, cfg.Forms.RequestTimeout, verifier, logger)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL)

	creds := credential.NewService(logger, users)
	intentService := intent.NewService(logger, gen, cfg.LLM)
	structureService := structure.NewService(logger, gen, cfg.LLM, cfg.Forms)
	authService := authsvc.NewService(logger, users, verifier, jwtManager)
	formService := form.NewService(logger, forms, creds,
		func(c domain.Credential) form.Session { return formsClient.Session(c) },
		structureService, cfg.Forms)
	reconciler := lifecycle.NewReconciler(logger, forms, creds,
		func(c domain.Credential) lifecycle.Session { return formsClient.Session(c) },
		cfg.Reconciler)

	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimitClients)
	handler := NewRouter(Handlers{
		Health: rest.NewHealthHandler(pool, BuildVersion()),
		Auth:   rest.NewAuthHandler(authService, cfg.Auth, logger),
		AI:     rest.NewAIHandler(intentService, structureService, logger),
		Forms:  rest.NewFormHandler(formService, logger),
	}, authService, limiter, cfg, logger)

	return &Server{Handler: handler, Reconciler: reconciler}, nil
}

// Run is the application entry point. It loads configuration, connects to
// the database, serves HTTP and runs the reconciler until ctx is canceled,
// then shuts the listener down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, cfg.Database.DSN, MigrateUp, logger); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	srv, err := New(ctx, cfg, pool, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return httpServer.Shutdown(shutdownCtx)
	})

	if cfg.Reconciler.Enabled {
		g.Go(func() error {
			return srv.Reconciler.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}

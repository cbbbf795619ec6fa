// Package swipelibrary assembles the service: storage, cache, blob store,
// mail transport, the business services and the HTTP server.
package swipelibrary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/swipefile/swipe-library/internal/blob"
	"github.com/swipefile/swipe-library/internal/cache"
	"github.com/swipefile/swipe-library/internal/config"
	"github.com/swipefile/swipe-library/internal/lib/jwt"
	smtplib "github.com/swipefile/swipe-library/internal/lib/smtp"
	"github.com/swipefile/swipe-library/internal/migrations"
	authservice "github.com/swipefile/swipe-library/internal/services/auth"
	catalogservice "github.com/swipefile/swipe-library/internal/services/catalog"
	"github.com/swipefile/swipe-library/internal/services/mailer"
	statsservice "github.com/swipefile/swipe-library/internal/services/stats"
	userservice "github.com/swipefile/swipe-library/internal/services/user"
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

// App is the assembled service.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New builds the App: opens the database, applies migrations, connects the
// cache and the blob store, and wires the services into the router.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	blobStore, err := blob.New(cfg.Blob)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	transport := smtplib.NewTransport(cfg.SMTP, logger)

	mailerService := mailer.New(transport, cfg.SetupLink, logger)
	authService := authservice.New(db, jwtMaker, logger)
	userService := userservice.New(db, mailerService, logger)
	catalogService := catalogservice.New(db, blobStore, cacheRedis, logger)
	statsService := statsservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		JWTMaker:  jwtMaker,
		Accounts:  db,
		Readiness: db,
		Auth:      authService,
		Users:     userService,
		Catalog:   catalogService,
		Stats:     statsService,
	})

	router.Get("/docs/*", httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}

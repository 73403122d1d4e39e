// Package main initializes and starts the exhibition site server, setting up
// configuration, logging, the database, the guestbook and admin services,
// the request gate and the HTTP router.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	nethttp "net/http"

	"github.com/atinyakov/exhibition/internal/config"
	"github.com/atinyakov/exhibition/internal/db"
	"github.com/atinyakov/exhibition/internal/logger"
	"github.com/atinyakov/exhibition/internal/middleware"
	"github.com/atinyakov/exhibition/internal/repository"
	"github.com/atinyakov/exhibition/internal/server/handler/http"
	"github.com/atinyakov/exhibition/internal/service"
	"github.com/atinyakov/exhibition/internal/session"
	"github.com/atinyakov/exhibition/internal/window"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load config file, environment and flags.
	options, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, options, zapLogger); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, options *config.Options, zapLogger *zap.Logger) error {
	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(ctx, options.Database.DSN, db.PoolOptions{
		MaxOpenConns:    options.Database.MaxOpenConns,
		MaxIdleConns:    options.Database.MaxIdleConns,
		ConnMaxLifetime: options.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() { _ = postgresDB.Close() }()

	messageRepo := repository.NewPostgresMessageRepository(postgresDB)

	// Signed tokens when a secret is configured, the legacy cookie otherwise.
	var codec session.Codec = session.NewPlainCodec()
	if options.Session.Secret != "" {
		codec = session.NewSignedCodec(options.Session.Secret, options.Session.Issuer, options.Session.TTL)
	} else {
		zapLogger.Warn("session.secret is empty; admin sessions are unsigned")
	}

	exhibition := options.Exhibition
	win := window.New(exhibition.TeaserStart, exhibition.TeaserEnd, exhibition.ExhibitionStart, exhibition.ExhibitionEnd)

	// Initialize business-logic services.
	guestbookService := service.NewGuestbookService(
		messageRepo,
		service.NewBcryptHasher(options.Guestbook.BcryptCost),
		exhibition.Location,
	)
	authService := service.NewAuthService(options.Admin.Username, options.Admin.Password, codec)

	handlers := http.Handlers{
		Admin: &http.AdminHandler{
			AuthService:  authService,
			SecureCookie: options.Session.SecureCookie,
			SessionTTL:   options.Session.TTL,
			Logger:       zapLogger,
		},
		Messages: &http.MessageHandler{
			GuestbookService: guestbookService,
			MaxPageSize:      options.Guestbook.MaxPageSize,
			Logger:           zapLogger,
		},
		Exhibition: &http.ExhibitionHandler{Window: win},
		Health:     &http.HealthHandler{DB: messageRepo},
	}

	gate := middleware.NewGate(codec, win, exhibition.TeaserRedirect)
	router := http.NewRouter(handlers, gate, zapLogger)

	server := &nethttp.Server{
		Addr:         options.Server.Address,
		Handler:      router,
		ReadTimeout:  options.Server.ReadTimeout,
		WriteTimeout: options.Server.WriteTimeout,
		IdleTimeout:  options.Server.IdleTimeout,
	}

	useTLS := options.Server.TLSCert != "" && options.Server.TLSKey != ""
	if useTLS {
		cert, err := tls.LoadX509KeyPair(options.Server.TLSCert, options.Server.TLSKey)
		if err != nil {
			return fmt.Errorf("load server TLS cert/key: %w", err)
		}
		server.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting server",
			zap.String("addr", server.Addr),
			zap.Bool("tls", useTLS),
		)
		if useTLS {
			errCh <- server.ListenAndServeTLS("", "")
		} else {
			errCh <- server.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), options.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

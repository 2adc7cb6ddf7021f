package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "evently/docs"

	"evently/config"
	"evently/internal/adapters/auth"
	"evently/internal/adapters/cache"
	"evently/internal/adapters/email"
	"evently/internal/adapters/storage"
	deliveryhttp "evently/internal/delivery/http"
	"evently/internal/delivery/http/controllers"
	"evently/internal/delivery/http/middleware"
	"evently/internal/domain"
	"evently/internal/repository/postgres"
	"evently/internal/services"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

The server will:
- Load configuration from environment variables
- Apply pending database migrations
- Schedule the orphaned upload sweep
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with configuration from the environment
  evently serve

  # Start on another port with debug logging
  evently serve --port 8080 --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default: PORT or 5001)")
}

func runServer() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	logger.Info("starting evently", "env", cfg.Environment, "port", cfg.Port)

	ctx := context.Background()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	readCache, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	images, err := storage.NewDiskImageStore(cfg.UploadsDir, storage.DefaultURLPrefix, logger)
	if err != nil {
		return err
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.SESRegion,
			AccessKeyID:        cfg.Mail.SESAccessKeyID,
			SecretAccessKey:    cfg.Mail.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("email templates: %w", err)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewEventRegistrationRepository(db)
	resetRepo := postgres.NewPasswordResetRepository(db)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	emailService := services.NewEmailService(mailer, renderer, logger)
	authService := services.NewAuthService(userRepo, resetRepo, auth.NewBcryptHasher(auth.DefaultBcryptCost), tokens, emailService, logger)
	eventService := services.NewEventService(eventRepo, registrationRepo, userRepo, images, readCache, cfg.CacheTTL, logger)
	attendeeService := services.NewAttendeeService(eventRepo, registrationRepo, readCache, logger)

	sweeper := services.NewUploadSweeper(images, eventRepo, cfg.SweepGrace, logger)
	if err := sweeper.Start(cfg.SweepSchedule); err != nil {
		return fmt.Errorf("upload sweeper: %w", err)
	}
	defer sweeper.Stop()

	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginBurst)
	defer limiter.Stop()

	expose := cfg.IsDevelopment()
	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:         logger,
		Auth:           controllers.NewAuthController(logger, authService, expose),
		Events:         controllers.NewEventController(logger, eventService, cfg.MaxUploadBytes, expose),
		Attendees:      controllers.NewAttendeeController(logger, attendeeService, expose),
		Verifier:       tokens,
		Users:          userRepo,
		AuthLimiter:    limiter,
		UploadsDir:     images.Dir(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
		DB:             db,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-stop:
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	return nil
}

// newCache returns the Redis read cache when configured and the no-op cache otherwise.
// An unreachable Redis is logged and served without a cache.
func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.Cache, func()) {
	if cfg.RedisURL == "" {
		return cache.NoopCache{}, func() {}
	}
	rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, "")
	if err != nil {
		logger.Warn("redis unavailable, running without read cache", "err", err)
		return cache.NoopCache{}, func() {}
	}
	logger.Info("read cache enabled", "ttl", cfg.CacheTTL)
	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Warn("close redis", "err", err)
		}
	}
}

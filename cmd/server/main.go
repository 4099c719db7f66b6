package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diegogit03/roleplay-api/internal/config"
	"github.com/diegogit03/roleplay-api/internal/db"
	transport "github.com/diegogit03/roleplay-api/internal/http"
	"github.com/diegogit03/roleplay-api/internal/http/middleware"
	"github.com/diegogit03/roleplay-api/internal/mail"
	"github.com/diegogit03/roleplay-api/internal/repo"
	"github.com/diegogit03/roleplay-api/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := db.Migrate(ctx, cfg.DBURL); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbConn, err := db.Connect(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.Env != "prod" {
		if err := db.EnsureSeedUsers(ctx, dbConn.Pool, cfg.RequestTimeout); err != nil {
			logger.Error("failed to seed users", "error", err)
			os.Exit(1)
		}
	}

	userRepo := repo.NewUserRepo(dbConn.Pool, cfg.RequestTimeout)
	groupRepo := repo.NewGroupRepo(dbConn.Pool, cfg.RequestTimeout)
	requestRepo := repo.NewGroupRequestRepo(dbConn.Pool, cfg.RequestTimeout)
	linkTokenRepo := repo.NewLinkTokenRepo(dbConn.Pool, cfg.RequestTimeout)
	apiTokenRepo := repo.NewAPITokenRepo(dbConn.Pool, cfg.RequestTimeout)

	mailer := newMailer(cfg, logger)

	authService := services.NewAuthService(userRepo, apiTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	groupService := services.NewGroupService(groupRepo, userRepo, dbConn)
	requestService := services.NewGroupRequestService(requestRepo, groupRepo, dbConn)
	passwordService := services.NewPasswordService(userRepo, linkTokenRepo, mailer, cfg.ResetTokenTTL)

	router := transport.NewRouter(transport.Dependencies{
		Config:          cfg,
		AuthService:     authService,
		UserService:     userService,
		GroupService:    groupService,
		RequestService:  requestService,
		PasswordService: passwordService,
		TokenChecker:    apiTokenRepo,
		Logger:          logger,
		RateLimiter:     middleware.NewRateLimiter(cfg.RateLimitPerMinute),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.RequestTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrors:
		logger.Error("http server stopped unexpectedly", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("http server stopped")
}

func newLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	if env != "prod" {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

func newMailer(cfg *config.Config, logger *slog.Logger) mail.Mailer {
	if cfg.SMTPHost == "" {
		return &mail.LogMailer{Logger: logger}
	}

	mailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.MailFrom,
	})
	if err != nil {
		logger.Error("failed to create smtp mailer", "error", err)
		os.Exit(1)
	}
	return mailer
}

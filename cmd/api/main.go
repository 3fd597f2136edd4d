package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/passforge/passforge/internal/config"
	"github.com/passforge/passforge/internal/crypto"
	"github.com/passforge/passforge/internal/handler"
	"github.com/passforge/passforge/internal/middleware"
	"github.com/passforge/passforge/internal/policy"
	"github.com/passforge/passforge/internal/repository"
	"github.com/passforge/passforge/internal/service"
	"github.com/passforge/passforge/internal/strength"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := policy.New(nil, strength.NewZxcvbn())
	genHandler := handler.NewGeneratorHandler(service.NewGeneratorService(engine))

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/strength", genHandler.HandleStrength)
		r.Post("/api/v1/validate", genHandler.HandleValidate)
	})

	// Accounts and stored credentials need the database.
	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed, account routes disabled", "error", err)
	} else {
		defer db.Close()
		if err := repository.EnsureSchema(ctx, db); err != nil {
			slog.Warn("schema setup failed", "error", err)
		}

		sealer, err := newSealer(cfg)
		if err != nil {
			slog.Error("invalid ENTRY_KEY", "error", err)
			os.Exit(1)
		}

		tokens := crypto.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
		authHandler := handler.NewAuthHandler(service.NewAuthService(repository.NewUserRepository(db), tokens, engine))

		settingsService := service.NewSettingsService(repository.NewSettingsRepository(db), cfg.PasswordExpiryDays)
		settingsHandler := handler.NewSettingsHandler(settingsService)
		passwordHandler := handler.NewPasswordHandler(
			service.NewPasswordService(repository.NewPasswordRepository(db), settingsService, engine, sealer),
		)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/api/v1/auth/register", authHandler.HandleRegister)
			r.Post("/api/v1/auth/login", authHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(tokens))
			r.Get("/api/v1/auth/me", authHandler.HandleMe)

			r.Get("/api/v1/passwords", passwordHandler.HandleList)
			r.Post("/api/v1/passwords", passwordHandler.HandleCreate)
			r.Delete("/api/v1/passwords/{id}", passwordHandler.HandleDelete)

			r.Get("/api/v1/settings", settingsHandler.HandleGet)
			r.Put("/api/v1/settings", settingsHandler.HandleUpdate)
		})
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newSealer builds the entry sealer. Development setups without ENTRY_KEY
// fall back to a key derived from the JWT secret.
func newSealer(cfg config.Config) (*crypto.Sealer, error) {
	if cfg.EntryKey == "" {
		slog.Warn("ENTRY_KEY not set, deriving entry key from JWT_SECRET")
		return crypto.NewSealer(crypto.DeriveKey(cfg.JWTSecret, "entries"))
	}
	key, err := crypto.ParseKey(cfg.EntryKey)
	if err != nil {
		return nil, err
	}
	return crypto.NewSealer(key)
}

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/api"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/claims"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/config"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/database"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/session"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/support"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/user"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type app struct {
	user    user.Server
	claims  claims.Server
	support support.Server
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using process environment.")
	}

	cfg := config.Load()

	db, err := database.Open(database.Config{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	})
	if err != nil {
		slog.Error(fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer db.Close()

	sessions, err := newSessionStore(cfg)
	if err != nil {
		slog.Error(fmt.Sprintf("Failed to create session store: %v", err))
		os.Exit(1)
	}

	app := app{
		user:    *user.NewServer(user.NewRepository(db), sessions),
		claims:  *claims.NewServer(claims.NewRepository(db)),
		support: *support.NewServer(sessions),
	}

	server := http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: newRouter(app, sessions),
	}

	slog.Info(fmt.Sprintf("Starting server on port: %s", cfg.Port))

	if err := server.ListenAndServe(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newSessionStore(cfg config.Config) (session.Store, error) {
	if cfg.SessionBackend == config.SessionBackendRedis {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}

		return session.NewRedisStore(redis.NewClient(opt)), nil
	}

	return session.NewMemoryStore(), nil
}

func newRouter(app app, sessions session.Store) *http.ServeMux {
	authed := func(h api.HTTPHandler) http.Handler {
		return session.Middleware(sessions, h)
	}

	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", home)
	router.HandleFunc("GET /api/health", health)
	router.Handle("POST /api/register", api.HTTPHandler(app.user.Register))
	router.Handle("POST /api/login", api.HTTPHandler(app.user.Login))
	router.Handle("POST /api/logout", api.HTTPHandler(app.user.Logout))
	router.Handle("GET /api/user", authed(app.user.CurrentUser))
	router.Handle("POST /api/claims/property", authed(app.claims.SubmitProperty))
	router.Handle("POST /api/claims/motor", authed(app.claims.SubmitMotor))
	router.Handle("GET /api/claims", authed(app.claims.List))
	router.Handle("POST /api/support", api.HTTPHandler(app.support.SubmitTicket))

	return router
}

func home(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "static/index.html")
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	}); err != nil {
		slog.Error(err.Error())
	}
}

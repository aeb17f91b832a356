package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/divvy-app/divvy/docs"
	"github.com/divvy-app/divvy/internal/auth"
	"github.com/divvy-app/divvy/internal/config"
	"github.com/divvy-app/divvy/internal/database"
	"github.com/divvy-app/divvy/internal/expense"
	"github.com/divvy-app/divvy/internal/group"
	"github.com/divvy-app/divvy/internal/settlement"
	"github.com/divvy-app/divvy/internal/user"
	"github.com/divvy-app/divvy/pkg/logging"
	mw "github.com/divvy-app/divvy/pkg/middleware"
)

// @title           Divvy API
// @version         1.0
// @description     Shared expense tracking with automatic debt settlement
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	logging.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("connected to database")

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	requireAuth := mw.RequireAuth(jwtManager)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := mw.NewMetrics(reg)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, jwtManager)
	userHandler := user.NewHandler(userService)

	// Expense and settlement repositories double as the group
	// service's sources of ledger rows.
	expenseRepo := expense.NewRepository(db)
	settlementRepo := settlement.NewRepository(db)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, expenseRepo, settlementRepo)
	groupHandler := group.NewHandler(groupService)

	// Expense feature
	expenseService := expense.NewService(expenseRepo, groupRepo)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature
	settlementService := settlement.NewService(settlementRepo, groupRepo, groupService)
	settlementHandler := settlement.NewHandler(settlementService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger)
	r.Use(metrics.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes(requireAuth))
		r.With(requireAuth).Mount("/groups", groupHandler.Routes(
			expenseHandler.Routes(),
			settlementHandler.Routes(),
		))
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

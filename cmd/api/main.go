package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sohail/spendora/docs"
	"github.com/sohail/spendora/internal/balance"
	"github.com/sohail/spendora/internal/category"
	"github.com/sohail/spendora/internal/config"
	"github.com/sohail/spendora/internal/database"
	"github.com/sohail/spendora/internal/expense"
	expensesplit "github.com/sohail/spendora/internal/expense/split"
	"github.com/sohail/spendora/internal/group"
	"github.com/sohail/spendora/internal/user"
	"github.com/sohail/spendora/pkg/logging"
	mw "github.com/sohail/spendora/pkg/middleware"
)

// @title Spendora API
// @version 1.0
// @description Expense tracking and splitting API with per-user balance summaries.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
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

	// Split strategy factory
	splitFactory := expensesplit.NewFactory()

	// Category classifier is optional; without a URL every expense falls
	// back to the default category.
	var resolver category.Resolver = category.Disabled{}
	if cfg.ClassifierURL != "" {
		resolver = category.NewClient(cfg.ClassifierURL, cfg.ClassifierTimeout)
		slog.Info("category classifier enabled", "url", cfg.ClassifierURL)
	}

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (split factory and classifier injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupService, userService, resolver, splitFactory, cfg.ClassifierTimeout)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance feature reads expense snapshots and aggregates in memory
	balanceService := balance.NewService(expenseRepo)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.UserIdentity)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/balances", balanceHandler.Routes())
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vitrinedata/varejo-backend/internal/config"
	"github.com/vitrinedata/varejo-backend/internal/modules/actor"
	"github.com/vitrinedata/varejo-backend/internal/modules/catalog"
	"github.com/vitrinedata/varejo-backend/internal/modules/customer"
	"github.com/vitrinedata/varejo-backend/internal/modules/dashboard"
	"github.com/vitrinedata/varejo-backend/internal/modules/insights"
	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
	"github.com/vitrinedata/varejo-backend/internal/modules/monetization"
	"github.com/vitrinedata/varejo-backend/internal/modules/program"
	"github.com/vitrinedata/varejo-backend/internal/modules/rating"
	"github.com/vitrinedata/varejo-backend/internal/modules/sales"
	"github.com/vitrinedata/varejo-backend/internal/modules/vision"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	config.SetLogLevel(cfg.LogLevel)
	logger := config.GetLogger()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.WithError(err).Fatal("failed to reach database")
	}
	logger.Info("connected to database")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// ── Entities ────────────────────────────────────────────
	actorRepo := actor.NewPostgresRepository(db)
	actorService := actor.NewService(actorRepo)
	actor.NewHandler(actorService).RegisterRoutes(router)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customer.NewHandler(customerService).RegisterRoutes(router)

	// ── Stock & Sales ───────────────────────────────────────
	batchRepo := inventory.NewPostgresRepository(db)
	salesRepo := sales.NewPostgresRepository(db)

	inventoryService := inventory.NewService(batchRepo, catalogRepo, actorRepo,
		sales.NewVelocityReader(salesRepo))
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	salesService := sales.NewService(salesRepo, batchRepo, catalogRepo)
	sales.NewHandler(salesService).RegisterRoutes(router)

	// ── Analytics ───────────────────────────────────────────
	ratingService := rating.NewService(salesRepo, batchRepo)
	rating.NewHandler(ratingService).RegisterRoutes(router)

	dashboardService := dashboard.NewService(salesRepo, catalogRepo)
	dashboard.NewHandler(dashboardService).RegisterRoutes(router)

	insightsService := insights.NewService(inventoryService)
	insights.NewHandler(insightsService).RegisterRoutes(router)

	visionService := vision.NewService(salesRepo, catalogRepo, actorRepo, customerRepo)
	vision.NewHandler(visionService).RegisterRoutes(router)

	// ── Programs & Monetization ─────────────────────────────
	programRepo := program.NewPostgresRepository(db)
	programService := program.NewService(programRepo, ratingService, salesRepo, catalogRepo)
	program.NewHandler(programService).RegisterRoutes(router)

	proposalRepo := monetization.NewPostgresProposalRepository(db)
	fundRepo := monetization.NewPostgresFundRepository(db)
	monetizationService := monetization.NewService(proposalRepo, fundRepo)
	monetization.NewHandler(monetizationService).RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.HTTPPort).Info("api server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}

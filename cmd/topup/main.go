package main

import (
	"context"
	"net/http"

	"github.com/caiuswebs/luxe-backend/config"
	"github.com/caiuswebs/luxe-backend/internal/catalog"
	"github.com/caiuswebs/luxe-backend/internal/db"
	"github.com/caiuswebs/luxe-backend/internal/handlers"
	"github.com/caiuswebs/luxe-backend/internal/metrics"
	"github.com/caiuswebs/luxe-backend/internal/middleware"
	"github.com/caiuswebs/luxe-backend/internal/orders"
	"github.com/caiuswebs/luxe-backend/internal/provider"
	"github.com/caiuswebs/luxe-backend/logging"
	"github.com/go-chi/chi/v5"
)

func main() {
	logger := logging.GetSugaredLogger()
	defer logger.Sync()

	cfg := config.GetConfig()

	database, err := db.NewManager(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer database.Close()

	providerClient := provider.NewClient(cfg, logger)

	syncer, err := catalog.NewSyncer(database, providerClient, cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go syncer.StartCatalogSync(ctx)

	reg := metrics.NewRegistry()

	h := handlers.Handler{
		Config:   cfg,
		Database: database,
		Orders:   orders.NewService(database, providerClient, logger),
		Verifier: providerClient,
		Metrics:  reg,
		Logger:   logger,
	}

	r := initRouter(h, reg)

	err = http.ListenAndServe(cfg.RunAddress, r)
	logger.Fatalw("failed to start server", "error", err)
}

func initRouter(h handlers.Handler, reg *metrics.Registry) *chi.Mux {
	operatorOnly := middleware.ValidateOperator(h.Config.JWTSecret)

	r := chi.NewRouter()
	r.Get(`/`, h.Health)
	r.Handle(`/metrics`, reg.Handler())
	r.Get(`/api/packs`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.Packs),
				h.Logger,
				middleware.WriteWithCompression,
			).ServeHTTP(w, r)
		},
	)
	r.Post(`/api/verify-id`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.VerifyID),
				h.Logger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
			).ServeHTTP(w, r)
		},
	)
	r.Post(`/api/orders`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.SubmitOrder),
				h.Logger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
			).ServeHTTP(w, r)
		},
	)
	r.Post(`/api/operator/register`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.OperatorRegister),
				h.Logger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
				middleware.ValidateCredentials,
			).ServeHTTP(w, r)
		},
	)
	r.Post(`/api/operator/login`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.OperatorLogin),
				h.Logger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
				middleware.ValidateCredentials,
			).ServeHTTP(w, r)
		},
	)
	r.Post(`/api/operator/orders/process`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.ProcessOrder),
				h.Logger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
				operatorOnly,
			).ServeHTTP(w, r)
		},
	)
	r.Get(`/api/operator/orders/{orderId}`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.GetOrder),
				h.Logger,
				middleware.WriteWithCompression,
				operatorOnly,
			).ServeHTTP(w, r)
		},
	)
	return r
}

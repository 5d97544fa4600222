// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"libtrack/internal/auth"
	"libtrack/internal/catalog"
	"libtrack/internal/circulation"
	"libtrack/internal/config"
	"libtrack/internal/export"
	"libtrack/internal/ledger"
	"libtrack/internal/membership"
	"libtrack/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	catalogSvc := catalog.NewService()
	membershipSvc := membership.NewService()
	ledgerSvc := ledger.NewService()
	circulationSvc := circulation.NewService(catalogSvc, membershipSvc, ledgerSvc, cfg.Policy, logger)

	if err := seed(context.Background(), cfg, catalogSvc, membershipSvc); err != nil {
		logger.Fatal("failed to seed data", zap.Error(err))
	}

	catalogHandler := catalog.NewHandler(catalogSvc)
	membershipHandler := membership.NewHandler(membershipSvc)
	circulationHandler := circulation.NewHandler(circulationSvc)
	exportHandler := export.NewHandler(catalogSvc, membershipSvc, ledgerSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/login", membershipHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticator(membershipSvc))

		r.Route("/catalog", func(r chi.Router) {
			catalogHandler.Routes(r)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				catalogHandler.AdminRoutes(r)
			})
		})

		r.Route("/circulation", func(r chi.Router) {
			circulationHandler.Routes(r)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireUser)
				circulationHandler.UserRoutes(r)
			})
		})

		r.Route("/fines", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireUser)
				circulationHandler.FineRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				circulationHandler.AdminFineRoutes(r)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			membershipHandler.AdminRoutes(r)
		})

		r.Route("/export", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			exportHandler.AdminRoutes(r)
		})
	})

	addr := cfg.App.Addr()
	logger.Info("starting server",
		zap.String("addr", addr),
		zap.Int("loan_period_days", cfg.Policy.LoanPeriodDays),
		zap.Float64("fine_rate_per_day", cfg.Policy.FineRatePerDay))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// seed loads the starter dataset: the bootstrap admin from config plus the
// sample catalog the application has always shipped with.
func seed(ctx context.Context, cfg *config.Config, cat catalog.Service, mem membership.Service) error {
	if _, err := mem.AddUser(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, membership.RoleAdmin, membership.SubscriptionNone); err != nil {
		return err
	}

	books := [][2]string{
		{"1984", "George Orwell"},
		{"Brave New World", "Aldous Huxley"},
		{"To Kill a Mockingbird", "Harper Lee"},
		{"The Great Gatsby", "F. Scott Fitzgerald"},
	}
	for _, b := range books {
		if _, err := cat.AddItem(ctx, catalog.TypeBook, b[0], b[1]); err != nil {
			return err
		}
	}

	movies := [][2]string{
		{"Inception", "Christopher Nolan"},
		{"Interstellar", "Christopher Nolan"},
		{"The Matrix", "Wachowski Brothers"},
		{"Parasite", "Bong Joon-ho"},
	}
	for _, m := range movies {
		if _, err := cat.AddItem(ctx, catalog.TypeMovie, m[0], m[1]); err != nil {
			return err
		}
	}

	return nil
}

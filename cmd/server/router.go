package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mW "github.com/simplebank/backend/internal/middleware"
	"github.com/simplebank/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
)

type routerDeps struct {
	transactions   *services.TransactionService
	accounts       *services.AccountService
	jwtSecret      string
	authEnabled    bool
	requestTimeout time.Duration
}

func newRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(d.requestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/transactions", d.transactions.CreateTransaction)
		r.Get("/transactions", d.transactions.ListTransactions)
		r.Get("/transactions/{txId}", d.transactions.GetTransaction)
		r.Post("/accounts", d.accounts.OpenAccount)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.Auth(d.jwtSecret, d.authEnabled))

			r.Get("/accounts", d.accounts.ListAccounts)
			r.Get("/accounts/{accountId}", d.accounts.GetAccount)
			r.Post("/accounts/{accountId}/deposit", d.accounts.Deposit)
			r.Post("/accounts/{accountId}/withdraw", d.accounts.Withdraw)
		})
	})

	return r
}

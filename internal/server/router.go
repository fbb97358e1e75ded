package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the collections API. Login and the roster endpoints
// are open; everything that writes or reads worker-scoped data sits
// behind the bearer-token middleware.
func NewRouter(h *Handler, auth *Authenticator) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Post("/login", h.login)
	r.Get("/get_customers", h.getCustomers)
	r.Get("/get_payment_by_date", h.getPaymentByDate)
	r.Get("/get_previous_amount", h.getPreviousAmount)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Post("/update_payment", h.updatePayment)
		r.Get("/get_workers", h.getWorkers)
		r.Get("/get_entries_by_worker", h.getEntriesByWorker)
		r.Get("/get_customer_payment_history", h.getPaymentHistory)
		r.Post("/import_customers", h.importCustomers)
	})

	return r
}

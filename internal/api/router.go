package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/api/handlers"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/config"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/metrics"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/middleware"
)

type RouterDeps struct {
	Cfg     config.Config
	Auth    *handlers.AuthHandler
	Expense *handlers.ExpenseHandler
	Study   *handlers.StudyHandler
	Fx      *handlers.FxHandler
	AuthMW  *middleware.AuthMiddleware
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", d.Auth.Register)
		r.Post("/auth/login", d.Auth.Login)
		r.Post("/auth/refresh", d.Auth.Refresh)
		r.Get("/auth/google", d.Auth.GoogleRedirect)

		r.Get("/fx/usd-xof", d.Fx.Rate)

		// everything below needs a signed-in user
		r.Group(func(r chi.Router) {
			r.Use(d.AuthMW.Auth)

			r.Get("/auth/me", d.Auth.Me)
			r.Post("/auth/logout", d.Auth.Logout)
			r.Post("/auth/reset-password", d.Auth.ResetPassword)

			r.Post("/expenses", d.Expense.Record)
			r.Get("/expenses", d.Expense.List)
			r.Get("/expenses/stream", d.Expense.Stream)

			r.Get("/allowance", d.Expense.GetAllowance)
			r.Put("/allowance", d.Expense.SaveAllowance)

			r.Get("/study-items", d.Study.List)
			r.Post("/study-items", d.Study.Add)
			r.Post("/study-items/{id}/toggle", d.Study.Toggle)
		})
	})

	return r
}

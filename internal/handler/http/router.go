package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpay/payroll-engine-go/internal/handler/http/middleware"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	shiftHandler ShiftHandler,
	salaryHandler SalaryHandler,
	rateTierHandler RateTierHandler,
	taxConfigHandler TaxConfigHandler,
	automationHandler AutomationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Post("/", shiftHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", shiftHandler.Get)
					r.Put("/", shiftHandler.Update)
					r.Delete("/", shiftHandler.Delete)
				})
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Get("/", salaryHandler.List)
				r.Get("/pending", salaryHandler.ListPending)
				r.Get("/stats", salaryHandler.Stats)
				r.Post("/calculate", salaryHandler.Calculate)
				r.Post("/calculate/{employeeID}", salaryHandler.CalculateEmployee)
				r.Post("/mark-paid", salaryHandler.MarkPaid)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", salaryHandler.Get)
					r.Post("/approve", salaryHandler.Approve)
					r.Post("/reject", salaryHandler.Reject)
				})
			})

			r.Route("/rate-tiers", func(r chi.Router) {
				r.Get("/", rateTierHandler.List)
				r.Post("/", rateTierHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", rateTierHandler.Get)
					r.Put("/", rateTierHandler.Update)
					r.Delete("/", rateTierHandler.Delete)
				})
			})

			r.Route("/tax-configs", func(r chi.Router) {
				r.Get("/", taxConfigHandler.List)
				r.Post("/", taxConfigHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taxConfigHandler.Get)
					r.Put("/", taxConfigHandler.Update)
					r.Delete("/", taxConfigHandler.Delete)
				})
			})

			r.Route("/payroll-automation", func(r chi.Router) {
				r.Get("/settings", automationHandler.GetSettings)
				r.Put("/settings", automationHandler.UpdateSettings)
			})
		})
	})
	return r
}

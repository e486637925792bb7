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
	"github.com/paydesk/payroll-backend-go/internal/config"
	"github.com/paydesk/payroll-backend-go/internal/handler/http/middleware"
	"github.com/paydesk/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, payrollHandler PayrollHandler, notificationHandler NotificationHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "paydesk-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
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

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Payroll administration
			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Post("/process", payrollHandler.ProcessMonth)
				r.Get("/summary", payrollHandler.GetSummary)

				r.Route("/records", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRecords)

					r.Route("/{recordID}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetRecord)
						r.Post("/adjustments", payrollHandler.AddAdjustment)
						r.Post("/approve", payrollHandler.Approve)
						r.Post("/revoke", payrollHandler.Revoke)
						r.Post("/pay", payrollHandler.Pay)
						r.Post("/cancel", payrollHandler.Cancel)
						r.Post("/resend-payslip", payrollHandler.ResendPayslip)
					})
				})

				r.Route("/bulk", func(r chi.Router) {
					r.Post("/approve", payrollHandler.BulkApprove)
					r.Post("/revoke", payrollHandler.BulkRevoke)
					r.Post("/pay", payrollHandler.BulkPay)
				})
			})

			// Employee-facing notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Patch("/{notificationID}/read", notificationHandler.MarkRead)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}

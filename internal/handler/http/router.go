package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/handler/http/middleware"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	env string,
	payrollHandler PayrollHandler,
	correctionHandler CorrectionHandler,
	auditHandler AuditHandler,
	formulaHandler FormulaHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "stride-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
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

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Get("/summary", payrollHandler.GetSummary)

				r.Route("/records", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateRecord)
					r.Get("/", payrollHandler.ListRecords)
					r.Get("/{id}", payrollHandler.GetRecord)
					r.Post("/{id}/approve", payrollHandler.ApproveRecord)
					r.Get("/{recordID}/corrections", correctionHandler.ListByRecord)
				})

				r.Post("/branches/{branchID}/process", payrollHandler.ProcessBranchPayroll)
			})

			r.Route("/corrections", func(r chi.Router) {
				r.Post("/", correctionHandler.Create)
				r.Get("/", correctionHandler.List)
				r.Get("/{id}", correctionHandler.Get)
				r.Post("/{id}/approve", correctionHandler.Approve)
				r.Post("/{id}/reject", correctionHandler.Reject)
				r.Post("/{id}/process", correctionHandler.Process)
				r.Post("/{id}/cancel", correctionHandler.Cancel)
			})

			r.Route("/audit", func(r chi.Router) {
				r.Get("/", auditHandler.List)
			})

			r.Route("/formula-rules", func(r chi.Router) {
				r.Post("/", formulaHandler.CreateRule)
				r.Get("/", formulaHandler.ListRules)
				r.Delete("/{id}", formulaHandler.DeactivateRule)
			})
		})
	})
	return r
}

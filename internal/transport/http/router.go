package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/visapath-api/internal/application/account"
	"github.com/visapath-api/internal/application/content"
	fileapp "github.com/visapath-api/internal/application/file"
	"github.com/visapath-api/internal/application/inquiry"
	"github.com/visapath-api/internal/application/password"
	"github.com/visapath-api/internal/application/registration"
	"github.com/visapath-api/internal/application/session"
	"github.com/visapath-api/internal/config"
	"github.com/visapath-api/internal/domain"
	"github.com/visapath-api/internal/transport/http/handler"
	appmiddleware "github.com/visapath-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	registrationSvc := registration.NewService(registration.ServiceDeps{
		AccountRepo: deps.AccountRepo,
		Pending:     deps.PendingStore,
		Mailer:      deps.Mailer,
		SMSSender:   deps.SMSSender,
	})
	sessionDeps := session.ServiceDeps{
		AccountRepo:     deps.AccountRepo,
		SessionRepo:     deps.SessionRepo,
		JWTProvider:     deps.JWTProvider,
		RefreshTokenDur: cfg.RefreshTokenDur,
	}
	if deps.GoogleVerifier != nil {
		sessionDeps.GoogleVerifier = deps.GoogleVerifier
	}
	sessionSvc := session.NewService(sessionDeps)
	passwordSvc := password.NewService(deps.AccountRepo, deps.VerificationRepo, deps.Mailer)
	accountSvc := account.NewService(deps.AccountRepo, deps.SessionRepo)
	contentSvc := content.NewService(deps.ContentRepo)
	inquirySvc := inquiry.NewService(deps.InquiryRepo, deps.SMSSender, cfg.SalesAlertPhone)
	fileSvc := fileapp.NewService(deps.S3Store, deps.FileRepo)

	healthH := handler.NewHealthHandler()
	registrationH := handler.NewRegistrationHandler(registrationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	pwH := handler.NewPasswordRecoveryHandler(passwordSvc)
	accountH := handler.NewAccountHandler(accountSvc)
	contentH := handler.NewContentHandler(contentSvc)
	inquiryH := handler.NewInquiryHandler(inquirySvc)
	fileH := handler.NewFileHandler(fileSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register", registrationH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/verify-email", registrationH.VerifyEmail)
		r.With(sensitiveRL.Limit).Post("/auth/resend-verification", registrationH.Resend)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/sessions/google", sessionH.LoginWithGoogle)
		r.Post("/sessions/refresh", sessionH.Refresh)
		r.With(sensitiveRL.Limit).Post("/password-recovery/{action}", pwH.Action)
		r.Get("/contents", contentH.ListPublished)
		r.Get("/contents/{slug}", contentH.GetBySlug)
		r.With(sensitiveRL.Limit).Post("/inquiries", inquiryH.Submit)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			// Any authenticated account
			r.Get("/accounts/{id}", accountH.Get)
			r.Put("/accounts/{id}", accountH.Update)
			r.Get("/files/{id}", fileH.Download)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/accounts", accountH.List)
				r.Delete("/accounts/{id}", accountH.Disable)

				r.Get("/admin/contents", contentH.ListAll)
				r.Post("/contents", contentH.Create)
				r.Put("/contents/{id}", contentH.Update)
				r.Delete("/contents/{id}", contentH.Delete)

				r.Get("/inquiries", inquiryH.List)
				r.Put("/inquiries/{id}/status", inquiryH.SetStatus)

				r.Post("/files", fileH.Upload)
				r.Delete("/files/{id}", fileH.Delete)
			})
		})
	})

	return r
}

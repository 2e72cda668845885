package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/rivieracrest/villa-bookings/internal/http/handlers"
	adminhandlers "github.com/rivieracrest/villa-bookings/internal/http/handlers/admin"
	"github.com/rivieracrest/villa-bookings/internal/http/middleware"
	"github.com/rivieracrest/villa-bookings/internal/mailer"
	"github.com/rivieracrest/villa-bookings/internal/repo/postgres"
	"github.com/rivieracrest/villa-bookings/internal/service"
	"github.com/rivieracrest/villa-bookings/pkg/config"
	"github.com/rivieracrest/villa-bookings/pkg/database"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
	mw "github.com/rivieracrest/villa-bookings/pkg/middleware"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Repositories
	propertyRepo := postgres.NewPropertyRepo(pool)
	availabilityRepo := postgres.NewAvailabilityRepo(pool)
	inquiryRepo := postgres.NewInquiryRepo(pool)
	customerRepo := postgres.NewCustomerRepo(pool)
	adminRepo := postgres.NewAdminRepo(pool)
	contentRepo := postgres.NewContentRepo(pool)

	// Services
	emailSvc := buildMailer(cfg)
	inquirySvc := service.NewInquiryService(inquiryRepo, propertyRepo, customerRepo, emailSvc)

	// Handlers
	catalogHandler := handlers.NewCatalogHandler(propertyRepo, contentRepo)
	availabilityHandler := handlers.NewAvailabilityHandler(propertyRepo, availabilityRepo)
	inquiryHandler := handlers.NewInquiryHandler(inquirySvc)
	authHandler := adminhandlers.NewAuthHandler(adminRepo, cfg)
	adminPropertyHandler := adminhandlers.NewPropertyHandler(propertyRepo, availabilityRepo, cfg)
	adminCustomerHandler := adminhandlers.NewCustomerHandler(customerRepo, cfg)
	adminInquiryHandler := adminhandlers.NewInquiryHandler(inquiryRepo, inquirySvc)

	inquiryLimiter := middleware.NewRateLimiter(pool, middleware.RateLimitConfig{
		Requests: cfg.RateLimit.InquiryRequests,
		Window:   cfg.RateLimit.InquiryWindow,
		KeyFunc:  middleware.InquiryRateLimitKeyFunc,
	})

	// Expired sessions pile up otherwise; sweep them in the background.
	go sweepSessions(ctx, adminRepo)

	// Router
	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("villa-bookings"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Site.BaseURL, "http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Mount("/properties", catalogHandler.PropertyRoutes(availabilityHandler))
		r.Mount("/destinations", catalogHandler.DestinationRoutes())
		r.Mount("/services", catalogHandler.ServiceRoutes())
		r.Mount("/inquiries", inquiryHandler.Routes(inquiryLimiter.Middleware()))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(adminRepo, cfg.Admin.SessionCookie))
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Mount("/properties", adminPropertyHandler.Routes())
				r.Mount("/periods", adminPropertyHandler.PeriodRoutes())
				r.Mount("/customers", adminCustomerHandler.Routes())
				r.Mount("/inquiries", adminInquiryHandler.Routes())
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting villa-bookings API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func buildMailer(cfg *config.Config) mailer.Service {
	switch {
	case cfg.Email.DevMode:
		logger.Info("Email dev mode: messages are logged, not sent")
		return mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		return mailer.NewMailerSend(
			cfg.Email.MailerSendKey,
			cfg.Email.FromName, cfg.Email.FromEmail,
			cfg.Email.InquiryToName, cfg.Email.InquiryTo,
		)
	default:
		return mailer.NewSMTPMailer(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.FromEmail, cfg.Email.SMTPUser, cfg.Email.SMTPPass,
			cfg.Email.SMTPUseTLS, cfg.Email.InquiryTo,
		)
	}
}

func sweepSessions(ctx context.Context, admins postgres.AdminRepo) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := admins.DeleteExpiredSessions(ctx)
			if err != nil {
				logger.Error("Failed to sweep expired sessions", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("Removed expired admin sessions", "count", n)
			}
		}
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"

	"eventbroker/internal/config"
	"eventbroker/internal/database"
	"eventbroker/internal/handlers"
	"eventbroker/internal/middleware"
	"eventbroker/internal/repositories"
	"eventbroker/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	bookingRepo := repositories.NewBookingRepository(db.DB)

	// Payment gateway; the constructor fails without credentials so a server
	// that starts can always take payments.
	gateway, err := services.NewRazorpayService(services.RazorpayConfig{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
	})
	if err != nil {
		log.Fatalf("Failed to initialize payment gateway: %v", err)
	}

	// Optional infrastructure
	var storage services.StorageService
	if cfg.R2.AccessKeyID != "" {
		r2, err := services.NewR2Service(cfg.R2)
		if err != nil {
			log.Fatalf("Failed to initialize media storage: %v", err)
		}
		storage = r2
	} else {
		log.Printf("R2 credentials not set, media uploads disabled")
	}

	var cache *services.EventCache
	if cfg.Redis.Addr != "" {
		cache, err = services.NewEventCache(cfg.Redis)
		if err != nil {
			log.Printf("Redis unavailable, continuing without cache: %v", err)
		} else {
			defer cache.Close()
		}
	}

	var email services.EmailService
	if cfg.Email.APIKey != "" {
		email = services.NewResendEmailService(cfg.Email)
	}

	// Services
	authService := services.NewAuthService(userRepo)
	eventService := services.NewEventService(eventRepo, storage, services.NewImageService(), cache, cfg.Admin.EmailDomain)
	bookingService := services.NewBookingService(bookingRepo, eventRepo)
	paymentService := services.NewPaymentService(gateway, bookingRepo, email)
	verificationService := services.NewVerificationService(bookingRepo)

	cookieStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.Server.Env != "development",
		SameSite: http.SameSiteLaxMode,
	}
	authMiddleware := middleware.NewAuthMiddleware(authService, cookieStore, cfg.Admin.EmailDomain)

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:         authService,
		Events:       eventService,
		Bookings:     bookingService,
		Payments:     paymentService,
		Gateway:      gateway,
		Verification: verificationService,
		Sessions:     authMiddleware,
	})

	// Sweep expired sessions in the background.
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if err := authService.CleanupExpiredSessions(sweepCtx); err != nil {
					log.Printf("Failed to clean up expired sessions: %v", err)
				}
			}
		}
	}()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Printf("Server stopped")
}

package main

import (
	"log"
	"net/http"

	"github.com/careconnect/homecare/internal/config"
	"github.com/careconnect/homecare/internal/db"
	"github.com/careconnect/homecare/internal/handlers"
	"github.com/careconnect/homecare/internal/logger"
	"github.com/careconnect/homecare/internal/metrics"
	"github.com/careconnect/homecare/internal/notify"
	"github.com/careconnect/homecare/internal/payment"
	"github.com/careconnect/homecare/internal/session"
	"github.com/careconnect/homecare/internal/verify"
	"github.com/careconnect/homecare/internal/web"
)

func main() {
	cfg := config.Load()
	lg := logger.New("careconnect")

	if err := db.Init(cfg.Database.Path); err != nil {
		log.Fatalf("db init: %v", err)
	}
	notify.StartReminderLoop(cfg.Reminders, lg)

	m := metrics.New()
	auth := handlers.NewAuthHandler(cfg.Session.JWTSecret, cfg.Session.TokenTTL, lg)
	reg := &handlers.RegistrationHandler{
		Sessions: session.NewStore(cfg.Session.WizardTTL),
		Verifier: verify.New(cfg.Verify.Delay, cfg.Verify.DocumentPassRate),
		Payments: payment.New(cfg.Payment.Fee, cfg.Payment.Delay, cfg.Payment.SuccessRate),
		Metrics:  m,
		Log:      lg,
	}

	r := web.Router(web.Deps{
		Auth:         auth,
		Registration: reg,
		Caregivers:   &handlers.CaregiverHandler{Log: lg},
		Bookings:     &handlers.BookingHandler{Metrics: m, Log: lg},
		Dashboard:    &handlers.DashboardHandler{Log: lg},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	lg.Info("listening", map[string]interface{}{"addr": cfg.Server.Addr})
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/careconnect/homecare/internal/handlers"
	"github.com/careconnect/homecare/internal/models"
)

// Deps carries the handler groups the router wires together.
type Deps struct {
	Auth         *handlers.AuthHandler
	Registration *handlers.RegistrationHandler
	Caregivers   *handlers.CaregiverHandler
	Bookings     *handlers.BookingHandler
	Dashboard    *handlers.DashboardHandler
}

func Router(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public pages
	r.Get("/", handlers.Home)
	r.Get("/healthz", handlers.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	// Auth
	r.Post("/api/signup", d.Auth.Signup)
	r.Post("/api/login", d.Auth.Login)
	r.Post("/api/logout", d.Auth.Logout)
	r.With(d.Auth.WithSession).Get("/api/me", d.Auth.Me)

	// Public caregiver directory + nurse registry lookup
	r.Get("/api/caregivers", d.Caregivers.List)
	r.Get("/api/caregivers/{id}", d.Caregivers.Get)
	r.Post("/api/verify-nuid", d.Caregivers.VerifyNUID)

	// --- Caregiver registration wizard ---
	// Session works without a login; an authenticated caregiver gets the
	// final profile attached to their account.
	r.Route("/api/registration", func(rr chi.Router) {
		rr.Use(d.Auth.WithSession)
		rr.Post("/", d.Registration.Start)
		rr.Get("/questions", d.Registration.Questions)
		rr.Route("/{token}", func(tr chi.Router) {
			tr.Get("/", d.Registration.State)
			tr.Post("/back", d.Registration.Back)
			tr.Post("/steps/basic", d.Registration.SubmitBasic)
			tr.Post("/steps/professional", d.Registration.SubmitProfessional)
			tr.Post("/steps/assessment", d.Registration.SubmitAssessment)
			tr.Post("/steps/documents", d.Registration.SubmitDocuments)
			tr.Post("/verification", d.Registration.RunVerification)
			tr.Post("/verification/reset", d.Registration.ResetVerification)
			tr.Post("/payment", d.Registration.SubmitPayment)
			tr.Post("/steps/profile", d.Registration.SubmitProfile)
		})
	})

	// --- Bookings ---
	r.Route("/api/bookings", func(br chi.Router) {
		br.Use(d.Auth.WithSession)
		br.Get("/", d.Bookings.List)
		br.With(d.Auth.RequireRole(models.RoleCustomer)).Post("/", d.Bookings.Create)
		br.With(d.Auth.RequireRole(models.RoleCustomer)).Post("/{code}/cancel", d.Bookings.Cancel)
		br.With(d.Auth.RequireRole(models.RoleCaregiver)).Post("/{code}/confirm", d.Bookings.Confirm)
		br.With(d.Auth.RequireRole(models.RoleCaregiver)).Post("/{code}/complete", d.Bookings.Complete)
	})

	// QR image
	r.Get("/bookings/{code}/qr.png", d.Bookings.QR)

	// --- Dashboards ---
	r.Route("/api/dashboard", func(dr chi.Router) {
		dr.Use(d.Auth.WithSession)
		dr.With(d.Auth.RequireRole(models.RoleCaregiver)).Get("/caregiver", d.Dashboard.Caregiver)
		dr.With(d.Auth.RequireRole(models.RoleCustomer)).Get("/customer", d.Dashboard.Customer)
		dr.With(d.Auth.RequireRole(models.RoleCustomer)).Post("/customer/profile", d.Dashboard.UpsertCustomerProfile)
	})

	return r
}

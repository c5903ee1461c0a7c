package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/globalcounseling/counseling-api/internal/api/appointment"
	"github.com/globalcounseling/counseling-api/internal/api/auth"
	"github.com/globalcounseling/counseling-api/internal/api/therapist"
	"github.com/globalcounseling/counseling-api/internal/api/user"
	"github.com/globalcounseling/counseling-api/internal/api/wellness"
)

// Config carries the handler dependencies for router setup.
type Config struct {
	AuthHandler        *auth.AuthHandlerImpl
	UserHandler        *user.UserHandlerImpl
	TherapistHandler   *therapist.TherapistHandlerImpl
	AppointmentHandler *appointment.AppointmentHandlerImpl
	WellnessHandler    *wellness.WellnessHandlerImpl

	// Authenticate verifies bearer tokens and attaches the identity to the
	// request context. Only mutating appointment/wellness routes and
	// /auth/me sit behind it; the remaining surface is public, matching
	// the platform's existing contract.
	Authenticate func(http.Handler) http.Handler
}

// SetupRouter wires the resource routes. Server-wide middleware
// (request id, logging, recoverer) is applied in main before mounting.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/auth", func(r chi.Router) {
		r.Get("/google", cfg.AuthHandler.BeginGoogleAuth)
		r.Get("/google/callback", cfg.AuthHandler.GoogleCallback)
		r.Post("/test-token", cfg.AuthHandler.TestToken)
		r.Post("/logout", cfg.AuthHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticate)
			r.Get("/me", cfg.AuthHandler.Me)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", cfg.UserHandler.GetUsers)
		r.Post("/", cfg.UserHandler.CreateUser)
		r.Get("/{id}", cfg.UserHandler.GetUser)
		r.Put("/{id}", cfg.UserHandler.UpdateUser)
		r.Delete("/{id}", cfg.UserHandler.DeleteUser)
	})

	r.Route("/therapists", func(r chi.Router) {
		r.Get("/", cfg.TherapistHandler.GetTherapists)
		r.Post("/", cfg.TherapistHandler.CreateTherapist)
		r.Get("/{id}", cfg.TherapistHandler.GetTherapist)
		r.Put("/{id}", cfg.TherapistHandler.UpdateTherapist)
		r.Delete("/{id}", cfg.TherapistHandler.DeleteTherapist)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", cfg.AppointmentHandler.GetAppointments)
		r.Get("/user/{userId}", cfg.AppointmentHandler.GetAppointmentsByUser)
		r.Get("/{id}", cfg.AppointmentHandler.GetAppointment)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticate)
			r.Post("/", cfg.AppointmentHandler.CreateAppointment)
			r.Put("/{id}", cfg.AppointmentHandler.UpdateAppointment)
			r.Delete("/{id}", cfg.AppointmentHandler.DeleteAppointment)
		})
	})

	r.Route("/wellness", func(r chi.Router) {
		r.Get("/", cfg.WellnessHandler.GetEntries)
		r.Get("/user/{userId}", cfg.WellnessHandler.GetEntriesByUser)
		r.Get("/{id}", cfg.WellnessHandler.GetEntry)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticate)
			r.Post("/", cfg.WellnessHandler.CreateEntry)
			r.Put("/{id}", cfg.WellnessHandler.UpdateEntry)
			r.Delete("/{id}", cfg.WellnessHandler.DeleteEntry)
		})
	})

	return r
}

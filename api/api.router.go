package api

import (
	"net/http"

	"github.com/farmsense/herdhub/api/middleware"
	"github.com/farmsense/herdhub/api/resources"
	"github.com/farmsense/herdhub/internal/herdservice"
	"github.com/gorilla/mux"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.TokenMiddleware
	resources *resources.Resources
}

func NewRouter(svc *herdservice.HerdService, tokenConfig middleware.TokenConfig, healthCheck http.HandlerFunc) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewTokenMiddleware(tokenConfig),
		resources: resources.NewResources(svc),
	}

	r.resources.SetHealthCheck(healthCheck)
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// Animals
	animals := protected.PathPrefix("/animals").Subrouter()
	animals.HandleFunc("", r.resources.Animals.ListAnimals).Methods(http.MethodGet)
	animals.HandleFunc("", r.resources.Animals.RegisterAnimal).Methods(http.MethodPost)
	animals.HandleFunc("/{id}", r.resources.Animals.GetAnimal).Methods(http.MethodGet)
	animals.HandleFunc("/{id}", r.resources.Animals.RetireAnimal).Methods(http.MethodDelete)
	animals.HandleFunc("/{id}/tracking", r.resources.Animals.SetTracking).Methods(http.MethodPost)
	animals.HandleFunc("/{id}/locations", r.resources.Animals.IngestLocation).Methods(http.MethodPost)
	animals.HandleFunc("/{id}/history", r.resources.Animals.GetHistory).Methods(http.MethodGet)
	animals.HandleFunc("/{id}/summary", r.resources.Animals.GetSummary).Methods(http.MethodGet)

	// Geofences
	geofences := protected.PathPrefix("/geofences").Subrouter()
	geofences.HandleFunc("", r.resources.Geofences.ListGeofences).Methods(http.MethodGet)
	geofences.HandleFunc("", r.resources.Geofences.CreateGeofence).Methods(http.MethodPost)
	geofences.HandleFunc("/{id}", r.resources.Geofences.GetGeofence).Methods(http.MethodGet)
	geofences.HandleFunc("/{id}", r.resources.Geofences.DeactivateGeofence).Methods(http.MethodDelete)

	// Alerts
	alerts := protected.PathPrefix("/alerts").Subrouter()
	alerts.HandleFunc("", r.resources.Alerts.ListAlerts).Methods(http.MethodGet)
	alerts.HandleFunc("/sweep", r.resources.Alerts.RunSweep).Methods(http.MethodPost)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

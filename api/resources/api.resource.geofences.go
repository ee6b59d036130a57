// FilePath: api/resources/api.resource.geofences.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/herdservice"
	"github.com/farmsense/herdhub/internal/models"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// GeofenceHandlers encapsulates the geofence-related HTTP handlers
type GeofenceHandlers struct {
	herdservice *herdservice.HerdService
}

// @Summary Create a geofence
// @Description Register a circular or polygonal geofence
// @Tags geofences
// @Accept json
// @Produce json
// @Param geofence body models.Geofence true "Geofence definition"
// @Success 201 {object} models.Geofence
// @Failure 400 {object} errors.APIError
// @Router /geofences [post]
// @Security BearerAuth
func (h *GeofenceHandlers) CreateGeofence(w http.ResponseWriter, r *http.Request) {
	var fence models.Geofence
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&fence); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.herdservice.RegisterGeofence(r.Context(), &fence); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, fence)
}

// @Summary List geofences
// @Description Get all active geofences
// @Tags geofences
// @Produce json
// @Success 200 {array} models.Geofence
// @Router /geofences [get]
func (h *GeofenceHandlers) ListGeofences(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.herdservice.Registry.List())
}

// @Summary Get a geofence
// @Description Get a geofence by ID
// @Tags geofences
// @Produce json
// @Param id path string true "Geofence ID"
// @Success 200 {object} models.Geofence
// @Failure 404 {object} errors.APIError
// @Router /geofences/{id} [get]
func (h *GeofenceHandlers) GetGeofence(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	fence, err := h.herdservice.Registry.Get(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, fence)
}

// @Summary Deactivate a geofence
// @Description Remove a geofence from evaluation without deleting its record
// @Tags geofences
// @Param id path string true "Geofence ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /geofences/{id} [delete]
// @Security BearerAuth
func (h *GeofenceHandlers) DeactivateGeofence(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	if err := h.herdservice.DeactivateGeofence(r.Context(), vars["id"]); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

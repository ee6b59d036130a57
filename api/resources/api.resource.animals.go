// FilePath: api/resources/api.resource.animals.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/herdservice"
	"github.com/farmsense/herdhub/internal/models"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// AnimalHandlers encapsulates the animal-related HTTP handlers
type AnimalHandlers struct {
	herdservice *herdservice.HerdService
}

// @Summary Register an animal
// @Description Register an animal for tracking
// @Tags animals
// @Accept json
// @Produce json
// @Param animal body models.AnimalTrack true "Animal details"
// @Success 201 {object} models.AnimalTrack
// @Failure 400 {object} errors.APIError
// @Router /animals [post]
// @Security BearerAuth
func (h *AnimalHandlers) RegisterAnimal(w http.ResponseWriter, r *http.Request) {
	var track models.AnimalTrack
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.herdservice.RegisterAnimal(r.Context(), &track); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, track)
}

// @Summary List animals
// @Description Get a paginated list of tracked animals
// @Tags animals
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.AnimalTrack
// @Router /animals [get]
func (h *AnimalHandlers) ListAnimals(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	animals, err := h.herdservice.ListAnimals(r.Context(), offset, limit)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to list animals", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, animals)
}

// @Summary Get an animal
// @Description Get the current tracking state for an animal
// @Tags animals
// @Produce json
// @Param id path string true "Animal ID"
// @Success 200 {object} models.AnimalTrack
// @Failure 404 {object} errors.APIError
// @Router /animals/{id} [get]
func (h *AnimalHandlers) GetAnimal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	track, err := h.herdservice.GetAnimal(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("animal not found", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, track)
}

// @Summary Toggle tracking
// @Description Enable or disable tracking for an animal
// @Tags animals
// @Accept json
// @Produce json
// @Param id path string true "Animal ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /animals/{id}/tracking [post]
// @Security BearerAuth
func (h *AnimalHandlers) SetTracking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.herdservice.SetTrackingEnabled(r.Context(), id, body.Enabled); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Retire an animal
// @Description Delete an animal and all its associated tracking data
// @Tags animals
// @Param id path string true "Animal ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /animals/{id} [delete]
// @Security BearerAuth
func (h *AnimalHandlers) RetireAnimal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.herdservice.Cleanup.RetireAnimal(r.Context(), id); err != nil {
		respondWithError(w, errors.NewInternalError("failed to retire animal", err).WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Ingest a location report
// @Description Record a location report for an animal and run boundary evaluation
// @Tags animals
// @Accept json
// @Produce json
// @Param id path string true "Animal ID"
// @Param report body models.LocationReport true "Location report"
// @Success 202 {array} models.AlertRecord
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /animals/{id}/locations [post]
// @Security BearerAuth
func (h *AnimalHandlers) IngestLocation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	var report models.LocationReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	report.AnimalID = vars["id"]

	alerts, err := h.herdservice.IngestReport(r.Context(), report)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	if alerts == nil {
		alerts = []models.AlertRecord{}
	}

	respondWithJSON(w, http.StatusAccepted, alerts)
}

// @Summary Get location history
// @Description Get the ordered location samples for an animal
// @Tags animals
// @Produce json
// @Param id path string true "Animal ID"
// @Param since query int false "Lower timestamp bound (ms since epoch)"
// @Success 200 {array} models.LocationSample
// @Router /animals/{id}/history [get]
func (h *AnimalHandlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	var query models.HistoryQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	samples := h.herdservice.GetHistory(r.Context(), vars["id"], query.Since)
	respondWithJSON(w, http.StatusOK, samples)
}

// @Summary Get movement summary
// @Description Summarize an animal's movement over a trailing window
// @Tags animals
// @Produce json
// @Param id path string true "Animal ID"
// @Param window_days query int false "Window size in days (default 7)"
// @Success 200 {object} models.MovementSummary
// @Failure 404 {object} errors.APIError
// @Router /animals/{id}/summary [get]
func (h *AnimalHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	var query models.SummaryQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}
	if query.WindowDays <= 0 {
		query.WindowDays = 7
	}

	summary := h.herdservice.Summarize(r.Context(), vars["id"], query.WindowDays)
	if summary == nil {
		respondWithError(w, errors.NewNotFoundError("no samples in window for animal "+vars["id"], nil).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

func getPaginationParams(r *http.Request) (offset, limit int) {
	query := r.URL.Query()
	offset, _ = strconv.Atoi(query.Get("offset"))
	limit, _ = strconv.Atoi(query.Get("limit"))

	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	return offset, limit
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

// respondWithServiceError maps typed service errors to their HTTP codes and
// wraps anything else as internal.
func respondWithServiceError(w http.ResponseWriter, err error, requestID string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError("unexpected error", err).WithRequestID(requestID))
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// FilePath: api/resources/api.resource.alerts.go
package resources

import (
	"net/http"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/herdservice"
	"github.com/farmsense/herdhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// AlertHandlers encapsulates the alert-related HTTP handlers
type AlertHandlers struct {
	herdservice *herdservice.HerdService
}

// @Summary List alerts
// @Description Get stored alerts, optionally filtered by animal, kind or severity
// @Tags alerts
// @Produce json
// @Param animal_id query string false "Animal ID"
// @Param kind query string false "Alert kind"
// @Param severity query string false "Alert severity"
// @Success 200 {array} models.AlertRecord
// @Router /alerts [get]
func (h *AlertHandlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	var filters models.AlertFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	alerts, err := h.herdservice.ListAlerts(r.Context(), filters, offset, limit)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to list alerts", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, alerts)
}

// @Summary Run a behavior sweep
// @Description Classify every tracked animal's recent movement now
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]int
// @Router /alerts/sweep [post]
// @Security BearerAuth
func (h *AlertHandlers) RunSweep(w http.ResponseWriter, r *http.Request) {
	emitted := h.herdservice.RunBehaviorSweep(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]int{"alerts_emitted": emitted})
}

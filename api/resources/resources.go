// FilePath: api/resources/resources.go
package resources

import (
	"net/http"

	"github.com/farmsense/herdhub/internal/herdservice"
	"github.com/gorilla/schema"
)

// queryDecoder maps URL query parameters onto filter structs.
var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// Resources holds all HTTP resource handlers
type Resources struct {
	Animals     *AnimalHandlers
	Geofences   *GeofenceHandlers
	Alerts      *AlertHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *herdservice.HerdService) *Resources {
	return &Resources{
		Animals:   &AnimalHandlers{herdservice: svc},
		Geofences: &GeofenceHandlers{herdservice: svc},
		Alerts:    &AlertHandlers{herdservice: svc},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// Package health serves the liveness check.
package health

import (
	"net/http"

	"github.com/aanand-mishra/attendance-api/internal/config"
	"github.com/aanand-mishra/attendance-api/internal/types"
	"github.com/aanand-mishra/attendance-api/internal/utils/response"
	"github.com/jonboulle/clockwork"
)

const StatusOnline = "online"

// New handles GET /api/health. It never fails.
func New(svc config.Service, clock clockwork.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, types.Health{
			Status:     StatusOnline,
			Service:    svc.Name,
			Version:    svc.Version,
			Timestamp:  types.Timestamp(clock.Now()),
			DeployedOn: svc.DeployedOn,
		})
	}
}

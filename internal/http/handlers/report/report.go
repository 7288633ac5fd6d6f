// Package report serves attendance summaries.
package report

import (
	"net/http"

	"github.com/aanand-mishra/attendance-api/internal/types"
	"github.com/aanand-mishra/attendance-api/internal/utils/response"
	"github.com/jonboulle/clockwork"
)

// mockSummary is returned for every date until a real data source exists.
var mockSummary = types.Summary{
	Total:          45,
	Present:        38,
	Late:           5,
	Absent:         2,
	AttendanceRate: 84.4,
}

// Daily handles GET /api/reports/daily?date=YYYY-MM-DD.
// The date is echoed as given; without the parameter it is today's date.
func Daily(clock clockwork.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := clock.Now()

		query := r.URL.Query()
		date := query.Get("date")
		if !query.Has("date") {
			date = now.Format(types.DateLayout)
		}

		response.WriteJSON(w, http.StatusOK, types.DailyReport{
			Date:      date,
			Summary:   mockSummary,
			Timestamp: types.Timestamp(now),
		})
	}
}

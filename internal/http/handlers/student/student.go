// Package student contains the HTTP handlers for the student roster.
//
// Handlers are built by factory functions that receive their dependencies
// once at startup and return the http.HandlerFunc the router calls on every
// request:
//
//	router.HandleFunc("GET /api/students", student.GetList(storage, clock))
package student

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/attendance-api/internal/storage"
	"github.com/aanand-mishra/attendance-api/internal/types"
	"github.com/aanand-mishra/attendance-api/internal/utils/response"
	"github.com/jonboulle/clockwork"
)

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students.
// Returns the whole roster with its size and the time it was read.
//
// Success response (200 OK):
//
//	{
//	  "students": [ { "id": "20240001", "name": "Juan Pérez", ... }, ... ],
//	  "count": 2,
//	  "timestamp": "2024-01-01T08:00:00Z"
//	}
//
// Error responses:
//
//	500 Internal — the roster could not be read
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage, clock clockwork.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("getting all students")

		students, err := storage.GetStudents(r.Context())
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, types.StudentList{
			Students:  students,
			Count:     len(students),
			Timestamp: types.Timestamp(clock.Now()),
		})
	}
}

// Package attendance records a single check-in and echoes it back with
// server metadata.
package attendance

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/attendance-api/internal/types"
	"github.com/aanand-mishra/attendance-api/internal/utils/response"
	"github.com/jonboulle/clockwork"
)

// New handles POST /api/attendance.
//
// Request body (JSON), extra keys are echoed untouched:
//
//	{ "matricula": "A1", "nombre": "X", "estado": "present", "clase": "10A" }
//
// Success response (200 OK):
//
//	{
//	  "success": true,
//	  "message": "Attendance recorded",
//	  "record": { ...input, "id": 1704096000000, "fecha": "2024-01-01",
//	              "hora": "08:00:00", "timestamp": "...", "server_received": true }
//	}
//
// Error responses:
//
//	400 Bad Request — a required key is absent ("Missing field: clase")
//	500 Internal    — the body is not valid JSON, or is not a JSON object
func New(clock clockwork.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// ── Step 1: Parse the whole body ─────────────────────────────
		// Unmarshal rejects trailing data after the first JSON value,
		// which a streaming Decoder would silently ignore.
		body, err := io.ReadAll(r.Body)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		var payload any
		if err := json.Unmarshal(body, &payload); err != nil {
			slog.Warn("cannot decode attendance payload", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		// ── Step 2: Check the required keys ──────────────────────────
		// Arrays are checked by membership of their string elements, so
		// ["matricula"] still reports the first key it lacks.
		if missing, err := missingField(payload); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		} else if missing != "" {
			response.WriteJSON(w, http.StatusBadRequest,
				response.Error(fmt.Sprintf("Missing field: %s", missing)))
			return
		}

		data, ok := payload.(map[string]any)
		if !ok {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(fmt.Errorf("attendance record must be a JSON object, got %s", jsonKind(payload))))
			return
		}

		// ── Step 3: Echo the record with server metadata ─────────────
		now := clock.Now()
		record := make(types.AttendanceRecord, len(data)+5)
		for k, v := range data {
			record[k] = v
		}
		record["id"] = now.UnixMilli()
		record["fecha"] = now.Format(types.DateLayout)
		record["hora"] = now.Format(types.ClockLayout)
		record["timestamp"] = types.Timestamp(now)
		record["server_received"] = true

		slog.Info("attendance recorded",
			slog.Any("matricula", data["matricula"]),
			slog.Any("estado", data["estado"]))

		response.WriteJSON(w, http.StatusOK, types.AttendanceAck{
			Success: true,
			Message: "Attendance recorded",
			Record:  record,
		})
	}
}

// missingField returns the first required key absent from payload, or ""
// when all are present. Only objects and arrays can hold keys.
func missingField(payload any) (string, error) {
	var has func(field string) bool

	switch p := payload.(type) {
	case map[string]any:
		has = func(field string) bool {
			_, ok := p[field]
			return ok
		}
	case []any:
		has = func(field string) bool {
			for _, el := range p {
				if s, ok := el.(string); ok && s == field {
					return true
				}
			}
			return false
		}
	default:
		return "", fmt.Errorf("cannot look up fields in a JSON %s", jsonKind(payload))
	}

	for _, field := range types.AttendanceFields {
		if !has(field) {
			return field, nil
		}
	}
	return "", nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}

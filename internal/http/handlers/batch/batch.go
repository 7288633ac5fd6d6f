// Package batch accepts attendance records captured offline by the client
// and acknowledges them. Records are counted and logged, nothing is stored.
package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/aanand-mishra/attendance-api/internal/types"
	"github.com/aanand-mishra/attendance-api/internal/utils/response"
	"github.com/jonboulle/clockwork"
)

const (
	MsgNoData = "No data received"
	syncNote  = "En producción esto se guardaría en Google Sheets"
)

// errNoData marks a payload with nothing in it.
var errNoData = errors.New(MsgNoData)

// ─────────────────────────────────────────────────────────────────────────────
// Sync handles POST /api/sync.
//
// The body may be any non-empty JSON value. The record count is the number
// of keys of an object, elements of an array, or characters of a string.
//
// Success response (200 OK):
//
//	{
//	  "success": true,
//	  "message": "Datos recibidos (3 registros)",
//	  "count": 3,
//	  "synced_at": "2024-01-01T08:00:00Z",
//	  "note": "..."
//	}
//
// Error responses:
//
//	400 Bad Request — empty, unparseable, or empty-valued body
//	500 Internal    — a scalar payload that has no length
//
// ─────────────────────────────────────────────────────────────────────────────
func Sync(clock clockwork.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// ── Step 1: Parse the whole body ─────────────────────────────
		// Anything that is not exactly one JSON value is "no data".
		body, err := io.ReadAll(r.Body)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgNoData))
			return
		}

		var payload any
		if err := json.Unmarshal(body, &payload); err != nil {
			slog.Debug("sync payload is not JSON", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgNoData))
			return
		}

		// ── Step 2: Count the records ────────────────────────────────
		count, err := recordCount(payload)
		if errors.Is(err, errNoData) {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgNoData))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("received records to synchronise", slog.Int("count", count))

		response.WriteJSON(w, http.StatusOK, types.SyncAck{
			Success:  true,
			Message:  fmt.Sprintf("Datos recibidos (%d registros)", count),
			Count:    count,
			SyncedAt: types.Timestamp(clock.Now()),
			Note:     syncNote,
		})
	}
}

// recordCount returns the length of a decoded JSON value. Values that are
// empty or false report errNoData; numbers and true have no length.
func recordCount(v any) (int, error) {
	var n int
	switch p := v.(type) {
	case nil:
	case map[string]any:
		n = len(p)
	case []any:
		n = len(p)
	case string:
		n = utf8.RuneCountInString(p)
	case bool:
		if p {
			return 0, errors.New("payload of type boolean has no length")
		}
	case float64:
		if p != 0 {
			return 0, errors.New("payload of type number has no length")
		}
	default:
		return 0, fmt.Errorf("unsupported payload type %T", v)
	}

	if n == 0 {
		return 0, errNoData
	}
	return n, nil
}

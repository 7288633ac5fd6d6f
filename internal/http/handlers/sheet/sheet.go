// Package sheet checks the spreadsheet settings entered on the client.
// The connection test is simulated: no request leaves the server.
package sheet

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/aanand-mishra/attendance-api/internal/types"
	"github.com/aanand-mishra/attendance-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
)

const (
	MsgNoSheetID = "No sheet ID provided"
	msgConnected = "Conexión exitosa con Google Sheets"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Test handles POST /api/config/test.
//
// Request body (JSON):
//
//	{ "sheet_id": "1AbC..." }
//
// Success response (200 OK):
//
//	{ "success": true, "message": "...", "sheet_id": "1AbC...", "tested_at": "..." }
//
// Error responses:
//
//	400 Bad Request — sheet_id missing or empty (also for empty or malformed bodies)
func Test(clock clockwork.Clock) http.HandlerFunc {
	validate := newValidator()

	return func(w http.ResponseWriter, r *http.Request) {
		// ── Step 1: Decode the whole body ────────────────────────────
		// Unmarshal rejects trailing data a streaming Decoder would skip.
		var req types.SheetTestRequest
		body, err := io.ReadAll(r.Body)
		if err == nil {
			err = json.Unmarshal(body, &req)
		}
		if err != nil {
			slog.Debug("cannot decode sheet test payload", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgNoSheetID))
			return
		}

		// ── Step 2: Require a non-empty id ───────────────────────────
		// "required" rejects null, "", 0 and false; empty arrays and
		// objects pass it and are caught by isEmptyContainer.
		if err := validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				slog.Debug("sheet test rejected",
					slog.String("reason", response.ValidationError(verrs).Error))
			}
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgNoSheetID))
			return
		}
		if isEmptyContainer(req.SheetID) {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgNoSheetID))
			return
		}

		slog.Info("simulated sheet connection test", slog.Any("sheet_id", req.SheetID))

		response.WriteJSON(w, http.StatusOK, types.SheetTestAck{
			Success:  true,
			Message:  msgConnected,
			SheetID:  req.SheetID,
			TestedAt: types.Timestamp(clock.Now()),
		})
	}
}

func isEmptyContainer(v any) bool {
	switch c := v.(type) {
	case []any:
		return len(c) == 0
	case map[string]any:
		return len(c) == 0
	}
	return false
}

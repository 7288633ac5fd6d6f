package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/aanand-mishra/attendance-api/internal/utils/response"
)

// Recoverer turns a panicking handler into a 500 response. The panic value
// is only exposed to the client when debug is set.
func Recoverer(debugMode bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				slog.ErrorContext(r.Context(), "panic serving request",
					slog.Any("panic", rvr),
					slog.String("path", r.URL.Path),
					slog.String("request_id", RequestIDFrom(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)

				msg := "Something went wrong"
				if debugMode {
					msg = fmt.Sprint(rvr)
				}
				response.WriteJSON(w, http.StatusInternalServerError, response.Response{
					Error:   "Internal server error",
					Message: msg,
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

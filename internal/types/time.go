package types

import "time"

// Layouts used for every time value written to clients.
const (
	TimestampLayout = time.RFC3339Nano
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04:05"
)

// Timestamp formats t as an ISO-8601 timestamp.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and utils can all import types without depending
// on each other.
package types

// Student is a roster entry returned by GET /api/students.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Grade string `json:"grade"`
	Group string `json:"group"`
	Email string `json:"email"`
}

// StudentList wraps the roster with its size and the time it was read.
type StudentList struct {
	Students  []Student `json:"students"`
	Count     int       `json:"count"`
	Timestamp string    `json:"timestamp"`
}

// Health is the body of GET /api/health.
type Health struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version"`
	Timestamp  string `json:"timestamp"`
	DeployedOn string `json:"deployed_on"`
}

// SyncAck acknowledges a batch of offline records pushed by the client.
type SyncAck struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Count    int    `json:"count"`
	SyncedAt string `json:"synced_at"`
	Note     string `json:"note"`
}

// AttendanceFields lists the keys an attendance payload must carry,
// in the order they are checked.
var AttendanceFields = []string{"matricula", "nombre", "estado", "clase"}

// AttendanceRecord is the inbound payload echoed back with server metadata.
// It is a map because unknown client keys are preserved verbatim.
type AttendanceRecord map[string]any

// AttendanceAck is the body of a successful POST /api/attendance.
type AttendanceAck struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Record  AttendanceRecord `json:"record"`
}

// Summary holds the head counts of a daily report.
type Summary struct {
	Total          int     `json:"total"`
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	Absent         int     `json:"absent"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// DailyReport is the body of GET /api/reports/daily.
type DailyReport struct {
	Date      string  `json:"date"`
	Summary   Summary `json:"summary"`
	Timestamp string  `json:"timestamp"`
}

// SheetTestRequest is the body of POST /api/config/test.
// The id is echoed back as sent, so any non-empty JSON value is accepted.
type SheetTestRequest struct {
	SheetID any `json:"sheet_id" validate:"required"`
}

// SheetTestAck reports the outcome of a spreadsheet connection test.
type SheetTestAck struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	SheetID  any    `json:"sheet_id"`
	TestedAt string `json:"tested_at"`
}

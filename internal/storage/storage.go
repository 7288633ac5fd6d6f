// Package storage defines the Storage interface, the contract a roster
// backend must satisfy. Handlers depend only on this interface, so tests
// can pass a fake and the SQLite backend can be swapped without touching
// the HTTP layer.
package storage

import (
	"context"

	"github.com/aanand-mishra/attendance-api/internal/types"
)

// Storage is the read-only student roster.
type Storage interface {
	// GetStudents returns every student on the roster.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	Close() error
}

// Fixtures is the mock roster every backend is seeded with.
var Fixtures = []types.Student{
	{
		ID:    "20240001",
		Name:  "Juan Pérez",
		Grade: "10",
		Group: "A",
		Email: "juan@ejemplo.com",
	},
	{
		ID:    "20240002",
		Name:  "María García",
		Grade: "11",
		Group: "B",
		Email: "maria@ejemplo.com",
	},
}

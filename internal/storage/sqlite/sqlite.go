// Package sqlite implements storage.Storage on top of SQLite.
//
// The database only holds the mock roster: New creates the students table
// and seeds it with storage.Fixtures, and nothing writes to it afterwards.
// With the default ":memory:" DSN the roster lives and dies with the
// process, so no state is persisted.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/attendance-api/internal/storage"
	"github.com/aanand-mishra/attendance-api/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the roster backend. Db is exported so tests and tooling can
// inspect the table directly.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the roster database at dsn and seeds it with storage.Fixtures.
func New(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS students (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			grade      TEXT NOT NULL,
			group_name TEXT NOT NULL,
			email      TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	s := &SQLite{Db: db}
	if err := s.seed(ctx, storage.Fixtures); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// seed inserts students in one transaction. INSERT OR IGNORE keeps a file
// DSN reopened on restart from failing on the primary key.
func (s *SQLite) seed(ctx context.Context, students []types.Student) error {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO students (id, name, grade, group_name, email) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("seed: prepare: %w", err)
	}
	defer stmt.Close()

	for _, st := range students {
		if _, err := stmt.ExecContext(ctx, st.ID, st.Name, st.Grade, st.Group, st.Email); err != nil {
			return fmt.Errorf("seed: insert %s: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

// GetStudents returns the roster ordered by student id.
// Returns an empty slice (not nil) when the table is empty.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, name, grade, group_name, email FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close() // must close rows to free the connection

	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Grade,
			&student.Group,
			&student.Email,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}

		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// Close releases the database handle. An in-memory roster is discarded.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Package sqlite provides a modernc.org/sqlite backed store. It satisfies the same repo and
// writer interfaces as the memory store; each write runs in a single transaction on a single
// connection, so parent checks and writes never interleave.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tinoosan/taskboard/internal/errs"
	"github.com/tinoosan/taskboard/internal/taskboard"
)

const schema = `
CREATE TABLE IF NOT EXISTS people (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    person_id INTEGER
);
CREATE INDEX IF NOT EXISTS idx_projects_person ON projects(person_id);

CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'todo',
    project_id INTEGER
);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
`

// Store wraps a SQLite database handle.
type Store struct {
	db *sql.DB
}

// Open opens the database at path (":memory:" works for tests) and applies the schema.
// References are not declared as FOREIGN KEYs: deletes must leave dangling ids behind.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Ready pings the database.
func (s *Store) Ready(ctx context.Context) error { return s.db.PingContext(ctx) }

// SeedDev inserts the dev seed chain person → project → task.
func (s *Store) SeedDev(ctx context.Context) (taskboard.Person, taskboard.Project, taskboard.Task, error) {
	p, pr, t := taskboard.DevSeed(time.Now())
	person, err := s.CreatePerson(ctx, p)
	if err != nil {
		return taskboard.Person{}, taskboard.Project{}, taskboard.Task{}, err
	}
	pr.PersonID = taskboard.IntPtr(person.ID)
	project, err := s.CreateProject(ctx, pr)
	if err != nil {
		return taskboard.Person{}, taskboard.Project{}, taskboard.Task{}, err
	}
	t.ProjectID = taskboard.IntPtr(project.ID)
	task, err := s.CreateTask(ctx, t)
	if err != nil {
		return taskboard.Person{}, taskboard.Project{}, taskboard.Task{}, err
	}
	return person, project, task, nil
}

// querier is the subset of *sql.DB and *sql.Tx the scan helpers need.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx runs fn in a transaction and commits when fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Snapshot reads the three tables inside one transaction.
func (s *Store) Snapshot(ctx context.Context) (taskboard.Snapshot, error) {
	var snap taskboard.Snapshot
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if snap.People, err = listPeople(ctx, tx); err != nil {
			return err
		}
		if snap.Projects, err = listProjects(ctx, tx); err != nil {
			return err
		}
		snap.Tasks, err = listTasks(ctx, tx)
		return err
	})
	return snap, err
}

func exists(ctx context.Context, q querier, table string, id int) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+table+" WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return n > 0, nil
}

func nullableID(ref *int) any {
	if ref == nil {
		return nil
	}
	return int64(*ref)
}

func refFromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	return taskboard.IntPtr(int(n.Int64))
}

func deleteByID(ctx context.Context, db *sql.DB, table, entity string, id int) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if n == 0 {
		return errs.NotFound(entity)
	}
	return nil
}

func isNoRows(err error) bool { return errors.Is(err, sql.ErrNoRows) }

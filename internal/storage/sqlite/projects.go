package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tinoosan/taskboard/internal/errs"
	"github.com/tinoosan/taskboard/internal/taskboard"
)

// created_at is stored as RFC3339Nano text so round trips are exact.
const timeLayout = time.RFC3339Nano

// ListProjects returns all projects in insertion order.
func (s *Store) ListProjects(ctx context.Context) ([]taskboard.Project, error) {
	return listProjects(ctx, s.db)
}

// GetProject returns a project by id.
func (s *Store) GetProject(ctx context.Context, id int) (taskboard.Project, error) {
	return getProject(ctx, s.db, id)
}

// CreateProject checks the owner and inserts p in one transaction.
func (s *Store) CreateProject(ctx context.Context, p taskboard.Project) (taskboard.Project, error) {
	p = p.Clone()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if p.PersonID != nil {
			ok, err := exists(ctx, tx, "people", *p.PersonID)
			if err != nil {
				return err
			}
			if !ok {
				return errs.NotFound(errs.EntityPerson)
			}
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO projects (name, description, created_at, person_id) VALUES (?, ?, ?, ?)`,
			p.Name, p.Description, p.CreatedAt.UTC().Format(timeLayout), nullableID(p.PersonID))
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read project id: %w", err)
		}
		p.ID = int(id)
		return nil
	})
	if err != nil {
		return taskboard.Project{}, err
	}
	return p, nil
}

// UpdateProject locates the row, checks a newly referenced owner and applies patch.
func (s *Store) UpdateProject(ctx context.Context, id int, patch taskboard.ProjectPatch) (taskboard.Project, error) {
	var out taskboard.Project
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if ref, ok := patch.PersonRef(); ok {
			found, err := exists(ctx, tx, "people", ref)
			if err != nil {
				return err
			}
			if !found {
				return errs.NotFound(errs.EntityPerson)
			}
		}
		out = patch.Apply(cur)
		_, err = tx.ExecContext(ctx, `UPDATE projects SET name = ?, description = ?, person_id = ? WHERE id = ?`,
			out.Name, out.Description, nullableID(out.PersonID), id)
		if err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		return nil
	})
	return out, err
}

// DeleteProject removes the row; tasks keep their project_id.
func (s *Store) DeleteProject(ctx context.Context, id int) error {
	return deleteByID(ctx, s.db, "projects", errs.EntityProject, id)
}

func scanProject(scan func(dest ...any) error) (taskboard.Project, error) {
	var p taskboard.Project
	var createdAt string
	var personID sql.NullInt64
	if err := scan(&p.ID, &p.Name, &p.Description, &createdAt, &personID); err != nil {
		return taskboard.Project{}, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return taskboard.Project{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	p.CreatedAt = t
	p.PersonID = refFromNull(personID)
	return p, nil
}

func listProjects(ctx context.Context, q querier) ([]taskboard.Project, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, description, created_at, person_id FROM projects ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()
	out := make([]taskboard.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func getProject(ctx context.Context, q querier, id int) (taskboard.Project, error) {
	row := q.QueryRowContext(ctx, `SELECT id, name, description, created_at, person_id FROM projects WHERE id = ?`, id)
	p, err := scanProject(row.Scan)
	if isNoRows(err) {
		return taskboard.Project{}, errs.NotFound(errs.EntityProject)
	}
	if err != nil {
		return taskboard.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

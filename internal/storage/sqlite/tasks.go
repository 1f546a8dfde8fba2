package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tinoosan/taskboard/internal/errs"
	"github.com/tinoosan/taskboard/internal/taskboard"
)

// ListTasks returns all tasks in insertion order.
func (s *Store) ListTasks(ctx context.Context) ([]taskboard.Task, error) {
	return listTasks(ctx, s.db)
}

// GetTask returns a task by id.
func (s *Store) GetTask(ctx context.Context, id int) (taskboard.Task, error) {
	return getTask(ctx, s.db, id)
}

// CreateTask checks the project and inserts t in one transaction.
func (s *Store) CreateTask(ctx context.Context, t taskboard.Task) (taskboard.Task, error) {
	t = t.Clone()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if t.ProjectID != nil {
			ok, err := exists(ctx, tx, "projects", *t.ProjectID)
			if err != nil {
				return err
			}
			if !ok {
				return errs.NotFound(errs.EntityProject)
			}
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO tasks (title, description, status, project_id) VALUES (?, ?, ?, ?)`,
			t.Title, t.Description, t.Status, nullableID(t.ProjectID))
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read task id: %w", err)
		}
		t.ID = int(id)
		return nil
	})
	if err != nil {
		return taskboard.Task{}, err
	}
	return t, nil
}

// UpdateTask locates the row, checks a newly referenced project and applies patch.
func (s *Store) UpdateTask(ctx context.Context, id int, patch taskboard.TaskPatch) (taskboard.Task, error) {
	var out taskboard.Task
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if ref, ok := patch.ProjectRef(); ok {
			found, err := exists(ctx, tx, "projects", ref)
			if err != nil {
				return err
			}
			if !found {
				return errs.NotFound(errs.EntityProject)
			}
		}
		out = patch.Apply(cur)
		_, err = tx.ExecContext(ctx, `UPDATE tasks SET title = ?, description = ?, status = ?, project_id = ? WHERE id = ?`,
			out.Title, out.Description, out.Status, nullableID(out.ProjectID), id)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	return out, err
}

// DeleteTask removes the row.
func (s *Store) DeleteTask(ctx context.Context, id int) error {
	return deleteByID(ctx, s.db, "tasks", errs.EntityTask, id)
}

func scanTask(scan func(dest ...any) error) (taskboard.Task, error) {
	var t taskboard.Task
	var projectID sql.NullInt64
	if err := scan(&t.ID, &t.Title, &t.Description, &t.Status, &projectID); err != nil {
		return taskboard.Task{}, err
	}
	t.ProjectID = refFromNull(projectID)
	return t, nil
}

func listTasks(ctx context.Context, q querier) ([]taskboard.Task, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, title, description, status, project_id FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()
	out := make([]taskboard.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func getTask(ctx context.Context, q querier, id int) (taskboard.Task, error) {
	row := q.QueryRowContext(ctx, `SELECT id, title, description, status, project_id FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row.Scan)
	if isNoRows(err) {
		return taskboard.Task{}, errs.NotFound(errs.EntityTask)
	}
	if err != nil {
		return taskboard.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

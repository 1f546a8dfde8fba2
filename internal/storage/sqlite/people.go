package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tinoosan/taskboard/internal/errs"
	"github.com/tinoosan/taskboard/internal/taskboard"
)

// ListPeople returns all people in insertion order.
func (s *Store) ListPeople(ctx context.Context) ([]taskboard.Person, error) {
	return listPeople(ctx, s.db)
}

// GetPerson returns a person by id.
func (s *Store) GetPerson(ctx context.Context, id int) (taskboard.Person, error) {
	return getPerson(ctx, s.db, id)
}

// CreatePerson inserts p and returns it with its new id.
func (s *Store) CreatePerson(ctx context.Context, p taskboard.Person) (taskboard.Person, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO people (name, email, role) VALUES (?, ?, ?)`, p.Name, p.Email, p.Role)
	if err != nil {
		return taskboard.Person{}, fmt.Errorf("failed to create person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return taskboard.Person{}, fmt.Errorf("failed to read person id: %w", err)
	}
	p.ID = int(id)
	return p, nil
}

// UpdatePerson applies patch to the stored row inside a transaction.
func (s *Store) UpdatePerson(ctx context.Context, id int, patch taskboard.PersonPatch) (taskboard.Person, error) {
	var out taskboard.Person
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getPerson(ctx, tx, id)
		if err != nil {
			return err
		}
		out = patch.Apply(cur)
		_, err = tx.ExecContext(ctx, `UPDATE people SET name = ?, email = ?, role = ? WHERE id = ?`, out.Name, out.Email, out.Role, id)
		if err != nil {
			return fmt.Errorf("failed to update person: %w", err)
		}
		return nil
	})
	return out, err
}

// DeletePerson removes the row; projects keep their person_id.
func (s *Store) DeletePerson(ctx context.Context, id int) error {
	return deleteByID(ctx, s.db, "people", errs.EntityPerson, id)
}

func listPeople(ctx context.Context, q querier) ([]taskboard.Person, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, email, role FROM people ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()
	out := make([]taskboard.Person, 0)
	for rows.Next() {
		var p taskboard.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Role); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func getPerson(ctx context.Context, q querier, id int) (taskboard.Person, error) {
	var p taskboard.Person
	err := q.QueryRowContext(ctx, `SELECT id, name, email, role FROM people WHERE id = ?`, id).Scan(&p.ID, &p.Name, &p.Email, &p.Role)
	if isNoRows(err) {
		return taskboard.Person{}, errs.NotFound(errs.EntityPerson)
	}
	if err != nil {
		return taskboard.Person{}, fmt.Errorf("failed to get person: %w", err)
	}
	return p, nil
}

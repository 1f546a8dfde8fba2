package postgres

// Package postgres provides a pgx-backed storage implementation that satisfies
// the repository and writer interfaces used by the services.
//
// References (person_id, project_id) are plain columns, not FOREIGN KEYs: they are
// checked at write time inside the same transaction and may dangle after a delete.

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

// Schema is applied by Migrate. Identity columns only grow, so ids are never reused.
const Schema = `
create table if not exists people (
    id bigint generated always as identity primary key,
    name text not null,
    email text not null,
    role text not null default ''
);
create table if not exists projects (
    id bigint generated always as identity primary key,
    name text not null,
    description text not null default '',
    created_at timestamptz not null,
    person_id bigint
);
create index if not exists idx_projects_person on projects(person_id);
create table if not exists tasks (
    id bigint generated always as identity primary key,
    title text not null,
    description text not null default '',
    status text not null default 'todo',
    project_id bigint
);
create index if not exists idx_tasks_project on tasks(project_id);
`

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
    pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil { return nil, err }
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil { return nil, err }
    // Verify connection
    if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, err }
    return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
    if _, err := s.pool.Exec(ctx, Schema); err != nil { return fmt.Errorf("apply schema: %w", err) }
    return nil
}

// SeedDev inserts one person owning one project holding one task, in one transaction.
func (s *Store) SeedDev(ctx context.Context) (taskboard.Person, taskboard.Project, taskboard.Task, error) {
    p, pr, t := taskboard.DevSeed(time.Now())
    err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
        if err := tx.QueryRow(ctx, `insert into people (name, email, role) values ($1,$2,$3) returning id`, p.Name, p.Email, p.Role).Scan(&p.ID); err != nil { return err }
        pr.PersonID = taskboard.IntPtr(p.ID)
        if err := tx.QueryRow(ctx, `insert into projects (name, description, created_at, person_id) values ($1,$2,$3,$4) returning id`, pr.Name, pr.Description, pr.CreatedAt, pr.PersonID).Scan(&pr.ID); err != nil { return err }
        t.ProjectID = taskboard.IntPtr(pr.ID)
        return tx.QueryRow(ctx, `insert into tasks (title, description, status, project_id) values ($1,$2,$3,$4) returning id`, t.Title, t.Description, t.Status, t.ProjectID).Scan(&t.ID)
    })
    if err != nil { return taskboard.Person{}, taskboard.Project{}, taskboard.Task{}, fmt.Errorf("seed: %w", err) }
    return p, pr, t, nil
}

// Snapshot reads the three tables in one repeatable-read transaction.
func (s *Store) Snapshot(ctx context.Context) (taskboard.Snapshot, error) {
    var snap taskboard.Snapshot
    err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
        var err error
        if snap.People, err = listPeople(ctx, tx); err != nil { return err }
        if snap.Projects, err = listProjects(ctx, tx); err != nil { return err }
        snap.Tasks, err = listTasks(ctx, tx)
        return err
    })
    return snap, err
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
    Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
    QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// lockParent takes a share lock on the parent row so it cannot be deleted before commit.
func lockParent(ctx context.Context, tx pgx.Tx, table, entity string, id int) error {
    var found int
    err := tx.QueryRow(ctx, `select 1 from `+table+` where id = $1 for share`, id).Scan(&found)
    if errors.Is(err, pgx.ErrNoRows) { return errs.NotFound(entity) }
    if err != nil { return fmt.Errorf("check %s: %w", table, err) }
    return nil
}

func deleteByID(ctx context.Context, pool *pgxpool.Pool, table, entity string, id int) error {
    ct, err := pool.Exec(ctx, `delete from `+table+` where id = $1`, id)
    if err != nil { return fmt.Errorf("delete %s: %w", table, err) }
    if ct.RowsAffected() == 0 { return errs.NotFound(entity) }
    return nil
}

// --- People ---

func (s *Store) ListPeople(ctx context.Context) ([]taskboard.Person, error) { return listPeople(ctx, s.pool) }

func (s *Store) GetPerson(ctx context.Context, id int) (taskboard.Person, error) {
    return getPerson(ctx, s.pool, id, "")
}

func (s *Store) CreatePerson(ctx context.Context, p taskboard.Person) (taskboard.Person, error) {
    err := s.pool.QueryRow(ctx, `insert into people (name, email, role) values ($1,$2,$3) returning id`, p.Name, p.Email, p.Role).Scan(&p.ID)
    if err != nil { return taskboard.Person{}, fmt.Errorf("insert person: %w", err) }
    return p, nil
}

func (s *Store) UpdatePerson(ctx context.Context, id int, patch taskboard.PersonPatch) (taskboard.Person, error) {
    var out taskboard.Person
    err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
        cur, err := getPerson(ctx, tx, id, " for update")
        if err != nil { return err }
        out = patch.Apply(cur)
        _, err = tx.Exec(ctx, `update people set name=$1, email=$2, role=$3 where id=$4`, out.Name, out.Email, out.Role, id)
        return err
    })
    if err != nil { return taskboard.Person{}, err }
    return out, nil
}

func (s *Store) DeletePerson(ctx context.Context, id int) error {
    return deleteByID(ctx, s.pool, "people", errs.EntityPerson, id)
}

func listPeople(ctx context.Context, q querier) ([]taskboard.Person, error) {
    rows, err := q.Query(ctx, `select id, name, email, role from people order by id asc`)
    if err != nil { return nil, err }
    defer rows.Close()
    out := make([]taskboard.Person, 0)
    for rows.Next() {
        var p taskboard.Person
        if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Role); err != nil { return nil, err }
        out = append(out, p)
    }
    return out, rows.Err()
}

func getPerson(ctx context.Context, q querier, id int, lock string) (taskboard.Person, error) {
    var p taskboard.Person
    err := q.QueryRow(ctx, `select id, name, email, role from people where id = $1`+lock, id).Scan(&p.ID, &p.Name, &p.Email, &p.Role)
    if errors.Is(err, pgx.ErrNoRows) { return taskboard.Person{}, errs.NotFound(errs.EntityPerson) }
    if err != nil { return taskboard.Person{}, err }
    return p, nil
}

// --- Projects ---

func (s *Store) ListProjects(ctx context.Context) ([]taskboard.Project, error) { return listProjects(ctx, s.pool) }

func (s *Store) GetProject(ctx context.Context, id int) (taskboard.Project, error) {
    return getProject(ctx, s.pool, id, "")
}

// CreateProject locks the owner row (if any) and inserts the project.
func (s *Store) CreateProject(ctx context.Context, p taskboard.Project) (taskboard.Project, error) {
    p = p.Clone()
    err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
        if p.PersonID != nil {
            if err := lockParent(ctx, tx, "people", errs.EntityPerson, *p.PersonID); err != nil { return err }
        }
        return tx.QueryRow(ctx, `
            insert into projects (name, description, created_at, person_id)
            values ($1,$2,$3,$4) returning id
        `, p.Name, p.Description, p.CreatedAt, p.PersonID).Scan(&p.ID)
    })
    if err != nil { return taskboard.Project{}, err }
    return p, nil
}

func (s *Store) UpdateProject(ctx context.Context, id int, patch taskboard.ProjectPatch) (taskboard.Project, error) {
    var out taskboard.Project
    err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
        cur, err := getProject(ctx, tx, id, " for update")
        if err != nil { return err }
        if ref, ok := patch.PersonRef(); ok {
            if err := lockParent(ctx, tx, "people", errs.EntityPerson, ref); err != nil { return err }
        }
        out = patch.Apply(cur)
        _, err = tx.Exec(ctx, `update projects set name=$1, description=$2, person_id=$3 where id=$4`, out.Name, out.Description, out.PersonID, id)
        return err
    })
    if err != nil { return taskboard.Project{}, err }
    return out, nil
}

func (s *Store) DeleteProject(ctx context.Context, id int) error {
    return deleteByID(ctx, s.pool, "projects", errs.EntityProject, id)
}

func listProjects(ctx context.Context, q querier) ([]taskboard.Project, error) {
    rows, err := q.Query(ctx, `select id, name, description, created_at, person_id from projects order by id asc`)
    if err != nil { return nil, err }
    defer rows.Close()
    out := make([]taskboard.Project, 0)
    for rows.Next() {
        var p taskboard.Project
        if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.PersonID); err != nil { return nil, err }
        out = append(out, p)
    }
    return out, rows.Err()
}

func getProject(ctx context.Context, q querier, id int, lock string) (taskboard.Project, error) {
    var p taskboard.Project
    err := q.QueryRow(ctx, `select id, name, description, created_at, person_id from projects where id = $1`+lock, id).
        Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.PersonID)
    if errors.Is(err, pgx.ErrNoRows) { return taskboard.Project{}, errs.NotFound(errs.EntityProject) }
    if err != nil { return taskboard.Project{}, err }
    return p, nil
}

// --- Tasks ---

func (s *Store) ListTasks(ctx context.Context) ([]taskboard.Task, error) { return listTasks(ctx, s.pool) }

func (s *Store) GetTask(ctx context.Context, id int) (taskboard.Task, error) {
    return getTask(ctx, s.pool, id, "")
}

// CreateTask locks the project row (if any) and inserts the task.
func (s *Store) CreateTask(ctx context.Context, t taskboard.Task) (taskboard.Task, error) {
    t = t.Clone()
    err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
        if t.ProjectID != nil {
            if err := lockParent(ctx, tx, "projects", errs.EntityProject, *t.ProjectID); err != nil { return err }
        }
        return tx.QueryRow(ctx, `
            insert into tasks (title, description, status, project_id)
            values ($1,$2,$3,$4) returning id
        `, t.Title, t.Description, t.Status, t.ProjectID).Scan(&t.ID)
    })
    if err != nil { return taskboard.Task{}, err }
    return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, id int, patch taskboard.TaskPatch) (taskboard.Task, error) {
    var out taskboard.Task
    err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
        cur, err := getTask(ctx, tx, id, " for update")
        if err != nil { return err }
        if ref, ok := patch.ProjectRef(); ok {
            if err := lockParent(ctx, tx, "projects", errs.EntityProject, ref); err != nil { return err }
        }
        out = patch.Apply(cur)
        _, err = tx.Exec(ctx, `update tasks set title=$1, description=$2, status=$3, project_id=$4 where id=$5`, out.Title, out.Description, out.Status, out.ProjectID, id)
        return err
    })
    if err != nil { return taskboard.Task{}, err }
    return out, nil
}

func (s *Store) DeleteTask(ctx context.Context, id int) error {
    return deleteByID(ctx, s.pool, "tasks", errs.EntityTask, id)
}

func listTasks(ctx context.Context, q querier) ([]taskboard.Task, error) {
    rows, err := q.Query(ctx, `select id, title, description, status, project_id from tasks order by id asc`)
    if err != nil { return nil, err }
    defer rows.Close()
    out := make([]taskboard.Task, 0)
    for rows.Next() {
        var t taskboard.Task
        if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.ProjectID); err != nil { return nil, err }
        out = append(out, t)
    }
    return out, rows.Err()
}

func getTask(ctx context.Context, q querier, id int, lock string) (taskboard.Task, error) {
    var t taskboard.Task
    err := q.QueryRow(ctx, `select id, title, description, status, project_id from tasks where id = $1`+lock, id).
        Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.ProjectID)
    if errors.Is(err, pgx.ErrNoRows) { return taskboard.Task{}, errs.NotFound(errs.EntityTask) }
    if err != nil { return taskboard.Task{}, err }
    return t, nil
}

package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/tinoosan/taskboard/internal/errs"
	"github.com/tinoosan/taskboard/internal/taskboard"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

// mustOpenClean opens the store, applies the schema and empties every table.
func mustOpenClean(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(s.Close)
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := s.pool.Exec(ctx, `truncate table tasks, projects, people restart identity`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return s
}

func TestStore_SeedAndViews(t *testing.T) {
	s := mustOpenClean(t, getTestDSN(t))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}
	person, project, task, err := s.SeedDev(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if person.ID != 1 || project.ID != 1 || task.ID != 1 {
		t.Fatalf("unexpected seed ids: %d %d %d", person.ID, project.ID, task.ID)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	v, ok := taskboard.BuildPersonView(snap, person.ID)
	if !ok {
		t.Fatalf("person view missing")
	}
	if len(v.Projects) != 1 || len(v.Projects[0].Tasks) != 1 {
		t.Fatalf("unexpected nesting: %+v", v)
	}
	if v.Projects[0].Tasks[0].Title != task.Title {
		t.Fatalf("task title = %q", v.Projects[0].Tasks[0].Title)
	}
}

func TestStore_ReferenceChecks(t *testing.T) {
	s := mustOpenClean(t, getTestDSN(t))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.CreateProject(ctx, taskboard.Project{Name: "x", CreatedAt: time.Now().UTC(), PersonID: taskboard.IntPtr(42)})
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != errs.EntityPerson {
		t.Fatalf("expected person not found, got %v", err)
	}
	projects, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("rejected create must not insert, got %d projects", len(projects))
	}

	// Record existence is reported before the parent.
	_, err = s.UpdateTask(ctx, 7, taskboard.TaskPatch{ProjectID: taskboard.Of(99)})
	if !errors.As(err, &nf) || nf.Entity != errs.EntityTask {
		t.Fatalf("expected task not found, got %v", err)
	}
}

func TestStore_TaskUpdateAndDanglingRefs(t *testing.T) {
	s := mustOpenClean(t, getTestDSN(t))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, project, task, err := s.SeedDev(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.UpdateTask(ctx, task.ID, taskboard.TaskPatch{Status: taskboard.Of("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != taskboard.DefaultTaskStatus || got.ProjectID == nil {
		t.Fatalf("blank status must keep, omitted projectId must keep: %+v", got)
	}
	got, err = s.UpdateTask(ctx, task.ID, taskboard.TaskPatch{Status: taskboard.Of("done"), ProjectID: taskboard.Null[int]()})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != "done" || got.ProjectID != nil {
		t.Fatalf("unexpected task: %+v", got)
	}

	if err := s.DeletePerson(ctx, 1); err != nil {
		t.Fatalf("delete person: %v", err)
	}
	pr, err := s.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if pr.PersonID == nil || *pr.PersonID != 1 {
		t.Fatalf("person delete must not cascade: %+v", pr)
	}
	if err := s.DeletePerson(ctx, 1); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}

	// Identity columns never hand out a deleted id again.
	p, err := s.CreatePerson(ctx, taskboard.Person{Name: "Bo", Email: "bo@example.com"})
	if err != nil {
		t.Fatalf("create person: %v", err)
	}
	if p.ID != 2 {
		t.Fatalf("expected id 2, got %d", p.ID)
	}
}

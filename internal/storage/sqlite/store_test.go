package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tinoosan/taskboard/internal/errs"
	"github.com/tinoosan/taskboard/internal/taskboard"
)

// newTestStore opens an in-memory SQLite database for testing.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SeedAndSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	person, project, task, err := s.SeedDev(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, person.ID)
	require.Equal(t, 1, project.ID)
	require.Equal(t, 1, task.ID)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.People, 1)
	require.Len(t, snap.Projects, 1)
	require.Len(t, snap.Tasks, 1)

	v, ok := taskboard.BuildTaskView(snap, 1)
	require.True(t, ok)
	require.NotNil(t, v.Project)
	require.NotNil(t, v.Person)
	require.Equal(t, person.Email, v.Person.Email)
}

func TestStore_ProjectRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	p, err := s.CreateProject(ctx, taskboard.Project{Name: "Mint", Description: "App Dental", CreatedAt: created})
	require.NoError(t, err)
	require.Nil(t, p.PersonID)

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Mint", got.Name)
	require.Equal(t, "App Dental", got.Description)
	require.True(t, created.Equal(got.CreatedAt))
	require.Nil(t, got.PersonID)
}

func TestStore_ForeignKeyChecks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProject(ctx, taskboard.Project{Name: "Ghost", CreatedAt: time.Now(), PersonID: taskboard.IntPtr(5)})
	var nf *errs.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, errs.EntityPerson, nf.Entity)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Empty(t, projects)

	_, err = s.CreateTask(ctx, taskboard.Task{Title: "t", Status: "todo", ProjectID: taskboard.IntPtr(5)})
	require.True(t, errors.As(err, &nf))
	require.Equal(t, errs.EntityProject, nf.Entity)
}

func TestStore_UpdateTaskTriState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, _, task, err := s.SeedDev(ctx)
	require.NoError(t, err)

	got, err := s.UpdateTask(ctx, task.ID, taskboard.TaskPatch{Status: taskboard.Of("")})
	require.NoError(t, err)
	require.Equal(t, "todo", got.Status)

	got, err = s.UpdateTask(ctx, task.ID, taskboard.TaskPatch{Status: taskboard.Of("done")})
	require.NoError(t, err)
	require.Equal(t, "done", got.Status)
	require.True(t, taskboard.SameRef(got.ProjectID, 1))

	got, err = s.UpdateTask(ctx, task.ID, taskboard.TaskPatch{ProjectID: taskboard.Null[int]()})
	require.NoError(t, err)
	require.Nil(t, got.ProjectID)

	stored, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Nil(t, stored.ProjectID)
	require.Equal(t, "done", stored.Status)

	_, err = s.UpdateTask(ctx, 99, taskboard.TaskPatch{})
	require.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestStore_DeleteLeavesDanglingRefs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, _, _, err := s.SeedDev(ctx)
	require.NoError(t, err)

	require.NoError(t, s.DeletePerson(ctx, 1))
	require.True(t, errors.Is(s.DeletePerson(ctx, 1), errs.ErrNotFound))

	p, err := s.GetProject(ctx, 1)
	require.NoError(t, err)
	require.True(t, taskboard.SameRef(p.PersonID, 1))

	// AUTOINCREMENT never hands out a deleted id again.
	next, err := s.CreatePerson(ctx, taskboard.Person{Name: "b", Email: "b@example.com"})
	require.NoError(t, err)
	require.Equal(t, 2, next.ID)
}

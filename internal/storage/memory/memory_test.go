package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tinoosan/taskboard/internal/errs"
	"github.com/tinoosan/taskboard/internal/taskboard"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	p, pr, tk := taskboard.DevSeed(time.Now())
	_, _, _, err := s.Seed(context.Background(), p, pr, tk)
	require.NoError(t, err)
	return s
}

func TestStore_SeedLinksRecords(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	pr, err := s.GetProject(ctx, 1)
	require.NoError(t, err)
	require.True(t, taskboard.SameRef(pr.PersonID, 1))

	tk, err := s.GetTask(ctx, 1)
	require.NoError(t, err)
	require.True(t, taskboard.SameRef(tk.ProjectID, 1))
	require.Equal(t, taskboard.DefaultTaskStatus, tk.Status)
}

func TestStore_CreateProjectUnknownPerson(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.CreateProject(ctx, taskboard.Project{Name: "Ghost", PersonID: taskboard.IntPtr(99)})
	var nf *errs.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, errs.EntityPerson, nf.Entity)

	list, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "rejected create must not grow the collection")
}

func TestStore_UpdateChecksRecordBeforeParent(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.UpdateTask(ctx, 42, taskboard.TaskPatch{ProjectID: taskboard.Of(99)})
	var nf *errs.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, errs.EntityTask, nf.Entity)

	_, err = s.UpdateTask(ctx, 1, taskboard.TaskPatch{ProjectID: taskboard.Of(99), Status: taskboard.Of("done")})
	require.True(t, errors.As(err, &nf))
	require.Equal(t, errs.EntityProject, nf.Entity)

	tk, err := s.GetTask(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "todo", tk.Status, "rejected update must not mutate")
}

func TestStore_DeleteDoesNotCascade(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.DeletePerson(ctx, 1))
	pr, err := s.GetProject(ctx, 1)
	require.NoError(t, err)
	require.True(t, taskboard.SameRef(pr.PersonID, 1), "personId must dangle after delete")

	require.True(t, errors.Is(s.DeletePerson(ctx, 1), errs.ErrNotFound))
}

func TestStore_DeletePreservesOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		_, err := s.CreatePerson(ctx, taskboard.Person{Name: n, Email: n + "@example.com"})
		require.NoError(t, err)
	}
	require.NoError(t, s.DeletePerson(ctx, 2))
	list, err := s.ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, []int{1, 3}, []int{list[0].ID, list[1].ID})
}

// Ids come from a counter, not from len+1, so a deleted id is never reassigned.
func TestStore_IDsNotReused(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, err := s.CreatePerson(ctx, taskboard.Person{Name: "a", Email: "a@example.com"})
	require.NoError(t, err)
	require.NoError(t, s.DeletePerson(ctx, a.ID))
	b, err := s.CreatePerson(ctx, taskboard.Person{Name: "b", Email: "b@example.com"})
	require.NoError(t, err)
	require.Equal(t, 1, a.ID)
	require.Equal(t, 2, b.ID, "length-based assignment would have produced 1 again")
}

func TestStore_ReturnedRecordsDoNotAlias(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	pr, err := s.GetProject(ctx, 1)
	require.NoError(t, err)
	*pr.PersonID = 77
	again, err := s.GetProject(ctx, 1)
	require.NoError(t, err)
	require.True(t, taskboard.SameRef(again.PersonID, 1))
}

func TestStore_ConcurrentCreates(t *testing.T) {
	s := New()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.CreatePerson(ctx, taskboard.Person{Name: "n", Email: "e"})
		}()
	}
	wg.Wait()
	list, err := s.ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, list, 50)
	seen := map[int]bool{}
	for _, p := range list {
		require.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}

package project_test

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/service/project"
    "github.com/tinoosan/taskboard/internal/storage/memory"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

func TestCreate_StampsCreatedAtFromClock(t *testing.T) {
    store := memory.New()
    at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
    svc := project.New(store, store, project.WithClock(func() time.Time { return at }))

    got, err := svc.Create(context.Background(), taskboard.Project{Name: "p", CreatedAt: time.Unix(0, 0)})
    if err != nil { t.Fatalf("create: %v", err) }
    if !got.CreatedAt.Equal(at) || got.CreatedAt.Location() != time.UTC {
        t.Fatalf("createdAt = %v", got.CreatedAt)
    }

    upd, err := svc.Update(context.Background(), got.ID, taskboard.ProjectPatch{Name: taskboard.Of("q")})
    if err != nil { t.Fatalf("update: %v", err) }
    if upd.Name != "q" || !upd.CreatedAt.Equal(at) {
        t.Fatalf("unexpected update: %+v", upd)
    }
}

func TestGet_DanglingOwnerRendersNil(t *testing.T) {
    store := memory.New()
    ctx := context.Background()
    p, pr, tk := taskboard.DevSeed(time.Now())
    if _, _, _, err := store.Seed(ctx, p, pr, tk); err != nil { t.Fatalf("seed: %v", err) }
    svc := project.New(store, store)

    if err := store.DeletePerson(ctx, 1); err != nil { t.Fatalf("delete: %v", err) }
    v, err := svc.Get(ctx, 1)
    if err != nil { t.Fatalf("get: %v", err) }
    if v.Person != nil || v.PersonID == nil || len(v.Tasks) != 1 {
        t.Fatalf("unexpected view: %+v", v)
    }
    if _, err := svc.Get(ctx, 2); !errors.Is(err, errs.ErrNotFound) {
        t.Fatalf("expected not found, got %v", err)
    }
}

package task_test

import (
    "context"
    "errors"
    "testing"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/service/task"
    "github.com/tinoosan/taskboard/internal/storage/memory"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

func TestCreate_DefaultsAndNormalizes(t *testing.T) {
    store := memory.New()
    svc := task.New(store, store)
    ctx := context.Background()

    got, err := svc.Create(ctx, taskboard.Task{ID: 99, Title: "a", ProjectID: taskboard.IntPtr(0)})
    if err != nil { t.Fatalf("create: %v", err) }
    if got.ID != 1 || got.Status != taskboard.DefaultTaskStatus || got.ProjectID != nil {
        t.Fatalf("unexpected task: %+v", got)
    }

    got, err = svc.Create(ctx, taskboard.Task{Title: "b", Status: "doing"})
    if err != nil { t.Fatalf("create: %v", err) }
    if got.Status != "doing" { t.Fatalf("status = %q", got.Status) }
}

func TestCreate_Rejections(t *testing.T) {
    store := memory.New()
    svc := task.New(store, store)

    _, err := svc.Create(context.Background(), taskboard.Task{Title: "   "})
    var ve *errs.ValidationError
    if !errors.As(err, &ve) || ve.Error() != "Title is required" {
        t.Fatalf("expected title validation error, got %v", err)
    }
    _, err = svc.Create(context.Background(), taskboard.Task{Title: "x", ProjectID: taskboard.IntPtr(3)})
    if !errors.Is(err, errs.ErrNotFound) || err.Error() != "Project not found" {
        t.Fatalf("expected project not found, got %v", err)
    }
    if _, err := svc.Get(context.Background(), 1); !errors.Is(err, errs.ErrNotFound) {
        t.Fatalf("expected task not found, got %v", err)
    }
}

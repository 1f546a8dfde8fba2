// Package task implements the task rules: title is required, status defaults to "todo",
// and a non-null projectId must name an existing project at write time.
package task

import (
    "context"
    "strings"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

type Repo interface {
    ListTasks(ctx context.Context) ([]taskboard.Task, error)
    GetTask(ctx context.Context, id int) (taskboard.Task, error)
    Snapshot(ctx context.Context) (taskboard.Snapshot, error)
}

// Writer persists tasks. Implementations must check the referenced project and write
// in one atomic step, returning errs.NotFound(errs.EntityProject) when it is missing.
type Writer interface {
    CreateTask(ctx context.Context, t taskboard.Task) (taskboard.Task, error)
    UpdateTask(ctx context.Context, id int, patch taskboard.TaskPatch) (taskboard.Task, error)
    DeleteTask(ctx context.Context, id int) error
}

type Service interface {
    ValidateCreate(t taskboard.Task) error
    Create(ctx context.Context, t taskboard.Task) (taskboard.Task, error)
    List(ctx context.Context) ([]taskboard.Task, error)
    Get(ctx context.Context, id int) (taskboard.TaskView, error)
    Update(ctx context.Context, id int, patch taskboard.TaskPatch) (taskboard.Task, error)
    Delete(ctx context.Context, id int) error
}

type service struct {
    repo   Repo
    writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) ValidateCreate(t taskboard.Task) error {
    if strings.TrimSpace(t.Title) == "" { return errs.Required("title") }
    return nil
}

func (s *service) Create(ctx context.Context, t taskboard.Task) (taskboard.Task, error) {
    if err := s.ValidateCreate(t); err != nil { return taskboard.Task{}, err }
    t.ID = 0
    if t.Status == "" { t.Status = taskboard.DefaultTaskStatus }
    t.ProjectID = taskboard.NormalizeRef(t.ProjectID)
    return s.writer.CreateTask(ctx, t)
}

func (s *service) List(ctx context.Context) ([]taskboard.Task, error) {
    return s.repo.ListTasks(ctx)
}

// Get returns the task with its project and that project's owner.
func (s *service) Get(ctx context.Context, id int) (taskboard.TaskView, error) {
    snap, err := s.repo.Snapshot(ctx)
    if err != nil { return taskboard.TaskView{}, err }
    v, ok := taskboard.BuildTaskView(snap, id)
    if !ok { return taskboard.TaskView{}, errs.NotFound(errs.EntityTask) }
    return v, nil
}

func (s *service) Update(ctx context.Context, id int, patch taskboard.TaskPatch) (taskboard.Task, error) {
    return s.writer.UpdateTask(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id int) error {
    return s.writer.DeleteTask(ctx, id)
}

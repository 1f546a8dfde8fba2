// Package project implements the project rules: name is required, createdAt is stamped
// once, and a non-null personId must name an existing person at write time.
package project

import (
    "context"
    "strings"
    "time"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

type Repo interface {
    ListProjects(ctx context.Context) ([]taskboard.Project, error)
    GetProject(ctx context.Context, id int) (taskboard.Project, error)
    Snapshot(ctx context.Context) (taskboard.Snapshot, error)
}

// Writer persists projects. Implementations must check the referenced person and write
// in one atomic step, returning errs.NotFound(errs.EntityPerson) when it is missing.
type Writer interface {
    CreateProject(ctx context.Context, p taskboard.Project) (taskboard.Project, error)
    UpdateProject(ctx context.Context, id int, patch taskboard.ProjectPatch) (taskboard.Project, error)
    DeleteProject(ctx context.Context, id int) error
}

type Service interface {
    ValidateCreate(p taskboard.Project) error
    Create(ctx context.Context, p taskboard.Project) (taskboard.Project, error)
    List(ctx context.Context) ([]taskboard.Project, error)
    Get(ctx context.Context, id int) (taskboard.ProjectView, error)
    Update(ctx context.Context, id int, patch taskboard.ProjectPatch) (taskboard.Project, error)
    Delete(ctx context.Context, id int) error
}

// Option configures the service.
type Option func(*service)

// WithClock overrides the clock used to stamp createdAt.
func WithClock(now func() time.Time) Option { return func(s *service) { s.now = now } }

type service struct {
    repo   Repo
    writer Writer
    now    func() time.Time
}

func New(repo Repo, writer Writer, opts ...Option) Service {
    s := &service{repo: repo, writer: writer, now: time.Now}
    for _, o := range opts { o(s) }
    return s
}

func (s *service) ValidateCreate(p taskboard.Project) error {
    if strings.TrimSpace(p.Name) == "" { return errs.Required("name") }
    return nil
}

func (s *service) Create(ctx context.Context, p taskboard.Project) (taskboard.Project, error) {
    if err := s.ValidateCreate(p); err != nil { return taskboard.Project{}, err }
    p.ID = 0
    p.PersonID = taskboard.NormalizeRef(p.PersonID)
    p.CreatedAt = s.now().UTC()
    return s.writer.CreateProject(ctx, p)
}

func (s *service) List(ctx context.Context) ([]taskboard.Project, error) {
    return s.repo.ListProjects(ctx)
}

// Get returns the project with its tasks and owner.
func (s *service) Get(ctx context.Context, id int) (taskboard.ProjectView, error) {
    snap, err := s.repo.Snapshot(ctx)
    if err != nil { return taskboard.ProjectView{}, err }
    v, ok := taskboard.BuildProjectView(snap, id)
    if !ok { return taskboard.ProjectView{}, errs.NotFound(errs.EntityProject) }
    return v, nil
}

func (s *service) Update(ctx context.Context, id int, patch taskboard.ProjectPatch) (taskboard.Project, error) {
    return s.writer.UpdateProject(ctx, id, patch)
}

// Delete removes the project only; tasks keep their projectId.
func (s *service) Delete(ctx context.Context, id int) error {
    return s.writer.DeleteProject(ctx, id)
}

// Package person implements the person rules: name and email are required on create,
// and deleting a person never touches the projects that reference it.
package person

import (
    "context"
    "strings"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

type Repo interface {
    ListPeople(ctx context.Context) ([]taskboard.Person, error)
    GetPerson(ctx context.Context, id int) (taskboard.Person, error)
    Snapshot(ctx context.Context) (taskboard.Snapshot, error)
}

type Writer interface {
    // CreatePerson assigns the id and stores p.
    CreatePerson(ctx context.Context, p taskboard.Person) (taskboard.Person, error)
    // UpdatePerson applies patch to the stored person atomically.
    UpdatePerson(ctx context.Context, id int, patch taskboard.PersonPatch) (taskboard.Person, error)
    DeletePerson(ctx context.Context, id int) error
}

type Service interface {
    ValidateCreate(p taskboard.Person) error
    Create(ctx context.Context, p taskboard.Person) (taskboard.Person, error)
    List(ctx context.Context) ([]taskboard.Person, error)
    Get(ctx context.Context, id int) (taskboard.PersonView, error)
    Update(ctx context.Context, id int, patch taskboard.PersonPatch) (taskboard.Person, error)
    Delete(ctx context.Context, id int) error
}

type service struct {
    repo   Repo
    writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) ValidateCreate(p taskboard.Person) error {
    if strings.TrimSpace(p.Name) == "" { return errs.Required("name") }
    if strings.TrimSpace(p.Email) == "" { return errs.Required("email") }
    return nil
}

func (s *service) Create(ctx context.Context, p taskboard.Person) (taskboard.Person, error) {
    if err := s.ValidateCreate(p); err != nil { return taskboard.Person{}, err }
    p.ID = 0
    return s.writer.CreatePerson(ctx, p)
}

func (s *service) List(ctx context.Context) ([]taskboard.Person, error) {
    return s.repo.ListPeople(ctx)
}

// Get returns the person with their projects, each carrying its tasks.
func (s *service) Get(ctx context.Context, id int) (taskboard.PersonView, error) {
    snap, err := s.repo.Snapshot(ctx)
    if err != nil { return taskboard.PersonView{}, err }
    v, ok := taskboard.BuildPersonView(snap, id)
    if !ok { return taskboard.PersonView{}, errs.NotFound(errs.EntityPerson) }
    return v, nil
}

func (s *service) Update(ctx context.Context, id int, patch taskboard.PersonPatch) (taskboard.Person, error) {
    return s.writer.UpdatePerson(ctx, id, patch)
}

// Delete removes the person only; projects keep their personId.
func (s *service) Delete(ctx context.Context, id int) error {
    return s.writer.DeletePerson(ctx, id)
}

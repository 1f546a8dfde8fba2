package memory

// Package memory provides the default in-memory store. Collections are kept in insertion
// order and every operation runs under one coarse lock, so a parent check and the write
// that depends on it can never interleave with another request.
import (
    "context"
    "sync"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

// Store is an in-memory implementation of the repos and writers used by the services.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
    mu       sync.RWMutex
    people   []taskboard.Person
    projects []taskboard.Project
    tasks    []taskboard.Task
    // Next ids per collection. They only grow, so a deleted id is never handed out again.
    nextPersonID  int
    nextProjectID int
    nextTaskID    int
}

// New constructs an empty in-memory store.
func New() *Store {
    return &Store{nextPersonID: 1, nextProjectID: 1, nextTaskID: 1}
}

// Seed loads the dev seed: person 1 owning project 1 which holds task 1.
func (s *Store) Seed(ctx context.Context, p taskboard.Person, pr taskboard.Project, t taskboard.Task) (taskboard.Person, taskboard.Project, taskboard.Task, error) {
    person, err := s.CreatePerson(ctx, p)
    if err != nil { return taskboard.Person{}, taskboard.Project{}, taskboard.Task{}, err }
    pr.PersonID = taskboard.IntPtr(person.ID)
    project, err := s.CreateProject(ctx, pr)
    if err != nil { return taskboard.Person{}, taskboard.Project{}, taskboard.Task{}, err }
    t.ProjectID = taskboard.IntPtr(project.ID)
    task, err := s.CreateTask(ctx, t)
    if err != nil { return taskboard.Person{}, taskboard.Project{}, taskboard.Task{}, err }
    return person, project, task, nil
}

// Reset drops all records and restarts the id counters.
func (s *Store) Reset() {
    s.mu.Lock()
    s.people, s.projects, s.tasks = nil, nil, nil
    s.nextPersonID, s.nextProjectID, s.nextTaskID = 1, 1, 1
    s.mu.Unlock()
}

// Snapshot returns a copy of all three collections taken under one read lock.
func (s *Store) Snapshot(_ context.Context) (taskboard.Snapshot, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return taskboard.Snapshot{People: s.copyPeopleLocked(), Projects: s.copyProjectsLocked(), Tasks: s.copyTasksLocked()}, nil
}

// --- People ---

// ListPeople returns all people in insertion order.
func (s *Store) ListPeople(_ context.Context) ([]taskboard.Person, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    return s.copyPeopleLocked(), nil
}

// GetPerson returns a person by id.
func (s *Store) GetPerson(_ context.Context, id int) (taskboard.Person, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    i := s.personIndexLocked(id)
    if i < 0 { return taskboard.Person{}, errs.NotFound(errs.EntityPerson) }
    return s.people[i], nil
}

// CreatePerson assigns the next person id and appends p.
func (s *Store) CreatePerson(_ context.Context, p taskboard.Person) (taskboard.Person, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    p.ID = s.nextPersonID
    s.nextPersonID++
    s.people = append(s.people, p)
    return p, nil
}

// UpdatePerson applies patch in place, keeping the person's position.
func (s *Store) UpdatePerson(_ context.Context, id int, patch taskboard.PersonPatch) (taskboard.Person, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    i := s.personIndexLocked(id)
    if i < 0 { return taskboard.Person{}, errs.NotFound(errs.EntityPerson) }
    s.people[i] = patch.Apply(s.people[i])
    return s.people[i], nil
}

// DeletePerson removes the person. Projects pointing at it are left untouched.
func (s *Store) DeletePerson(_ context.Context, id int) error {
    s.mu.Lock(); defer s.mu.Unlock()
    i := s.personIndexLocked(id)
    if i < 0 { return errs.NotFound(errs.EntityPerson) }
    s.people = append(s.people[:i], s.people[i+1:]...)
    return nil
}

// --- Projects ---

// ListProjects returns all projects in insertion order.
func (s *Store) ListProjects(_ context.Context) ([]taskboard.Project, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    return s.copyProjectsLocked(), nil
}

// GetProject returns a project by id.
func (s *Store) GetProject(_ context.Context, id int) (taskboard.Project, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    i := s.projectIndexLocked(id)
    if i < 0 { return taskboard.Project{}, errs.NotFound(errs.EntityProject) }
    return s.projects[i].Clone(), nil
}

// CreateProject checks the owner and appends p with the next project id.
func (s *Store) CreateProject(_ context.Context, p taskboard.Project) (taskboard.Project, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    p = p.Clone()
    if p.PersonID != nil && s.personIndexLocked(*p.PersonID) < 0 {
        return taskboard.Project{}, errs.NotFound(errs.EntityPerson)
    }
    p.ID = s.nextProjectID
    s.nextProjectID++
    s.projects = append(s.projects, p)
    return p.Clone(), nil
}

// UpdateProject locates the project, checks a newly referenced owner, then applies patch.
func (s *Store) UpdateProject(_ context.Context, id int, patch taskboard.ProjectPatch) (taskboard.Project, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    i := s.projectIndexLocked(id)
    if i < 0 { return taskboard.Project{}, errs.NotFound(errs.EntityProject) }
    if ref, ok := patch.PersonRef(); ok && s.personIndexLocked(ref) < 0 {
        return taskboard.Project{}, errs.NotFound(errs.EntityPerson)
    }
    s.projects[i] = patch.Apply(s.projects[i]).Clone()
    return s.projects[i].Clone(), nil
}

// DeleteProject removes the project. Tasks pointing at it are left untouched.
func (s *Store) DeleteProject(_ context.Context, id int) error {
    s.mu.Lock(); defer s.mu.Unlock()
    i := s.projectIndexLocked(id)
    if i < 0 { return errs.NotFound(errs.EntityProject) }
    s.projects = append(s.projects[:i], s.projects[i+1:]...)
    return nil
}

// --- Tasks ---

// ListTasks returns all tasks in insertion order.
func (s *Store) ListTasks(_ context.Context) ([]taskboard.Task, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    return s.copyTasksLocked(), nil
}

// GetTask returns a task by id.
func (s *Store) GetTask(_ context.Context, id int) (taskboard.Task, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    i := s.taskIndexLocked(id)
    if i < 0 { return taskboard.Task{}, errs.NotFound(errs.EntityTask) }
    return s.tasks[i].Clone(), nil
}

// CreateTask checks the project and appends t with the next task id.
func (s *Store) CreateTask(_ context.Context, t taskboard.Task) (taskboard.Task, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    t = t.Clone()
    if t.ProjectID != nil && s.projectIndexLocked(*t.ProjectID) < 0 {
        return taskboard.Task{}, errs.NotFound(errs.EntityProject)
    }
    t.ID = s.nextTaskID
    s.nextTaskID++
    s.tasks = append(s.tasks, t)
    return t.Clone(), nil
}

// UpdateTask locates the task, checks a newly referenced project, then applies patch.
func (s *Store) UpdateTask(_ context.Context, id int, patch taskboard.TaskPatch) (taskboard.Task, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    i := s.taskIndexLocked(id)
    if i < 0 { return taskboard.Task{}, errs.NotFound(errs.EntityTask) }
    if ref, ok := patch.ProjectRef(); ok && s.projectIndexLocked(ref) < 0 {
        return taskboard.Task{}, errs.NotFound(errs.EntityProject)
    }
    s.tasks[i] = patch.Apply(s.tasks[i]).Clone()
    return s.tasks[i].Clone(), nil
}

// DeleteTask removes the task.
func (s *Store) DeleteTask(_ context.Context, id int) error {
    s.mu.Lock(); defer s.mu.Unlock()
    i := s.taskIndexLocked(id)
    if i < 0 { return errs.NotFound(errs.EntityTask) }
    s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
    return nil
}

// Index lookups are linear scans; callers must hold s.mu.

func (s *Store) personIndexLocked(id int) int {
    for i := range s.people {
        if s.people[i].ID == id { return i }
    }
    return -1
}

func (s *Store) projectIndexLocked(id int) int {
    for i := range s.projects {
        if s.projects[i].ID == id { return i }
    }
    return -1
}

func (s *Store) taskIndexLocked(id int) int {
    for i := range s.tasks {
        if s.tasks[i].ID == id { return i }
    }
    return -1
}

func (s *Store) copyPeopleLocked() []taskboard.Person {
    out := make([]taskboard.Person, len(s.people))
    copy(out, s.people)
    return out
}

func (s *Store) copyProjectsLocked() []taskboard.Project {
    out := make([]taskboard.Project, 0, len(s.projects))
    for _, p := range s.projects { out = append(out, p.Clone()) }
    return out
}

func (s *Store) copyTasksLocked() []taskboard.Task {
    out := make([]taskboard.Task, 0, len(s.tasks))
    for _, t := range s.tasks { out = append(out, t.Clone()) }
    return out
}

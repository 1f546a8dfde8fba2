package taskboard

import "time"

// DefaultTaskStatus is assigned to tasks created without a status.
const DefaultTaskStatus = "todo"

// Person is someone who can own projects.
type Person struct {
    ID    int
    Name  string
    Email string
    Role  string
}

// Project groups tasks and may belong to a person.
type Project struct {
    ID          int
    Name        string
    Description string
    // CreatedAt is stamped on creation and never changes.
    CreatedAt   time.Time
    // PersonID references a Person; nil means no owner. It is checked on write only,
    // so it may dangle after the person is deleted.
    PersonID    *int
}

// Task is a unit of work that may belong to a project.
type Task struct {
    ID          int
    Title       string
    Description string
    Status      string
    // ProjectID references a Project; nil means unassigned. Same write-time rule as Project.PersonID.
    ProjectID   *int
}

// Snapshot is a consistent copy of all three collections in insertion order.
type Snapshot struct {
    People   []Person
    Projects []Project
    Tasks    []Task
}

// IntPtr returns a pointer to a copy of n.
func IntPtr(n int) *int { return &n }

// SameRef reports whether two nullable references point at the same id.
func SameRef(ref *int, id int) bool { return ref != nil && *ref == id }

// Clone returns a copy that shares no memory with p.
func (p Project) Clone() Project {
    p.PersonID = NormalizeRef(p.PersonID)
    return p
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
    t.ProjectID = NormalizeRef(t.ProjectID)
    return t
}

// DevSeed returns the records every fresh store starts with: one person owning one
// project that holds one task. IDs are left for the store to assign.
func DevSeed(now time.Time) (Person, Project, Task) {
    person := Person{Name: "Ana Torres", Email: "ana.torres@example.com", Role: "Developer"}
    project := Project{Name: "Mint", Description: "App Dental", CreatedAt: now.UTC()}
    task := Task{Title: "Set up repository", Description: "", Status: DefaultTaskStatus}
    return person, project, task
}

package taskboard

// ProjectWithTasks is a project annotated with the tasks that reference it.
type ProjectWithTasks struct {
    Project
    Tasks []Task
}

// PersonView is a person with their projects and each project's tasks.
type PersonView struct {
    Person
    Projects []ProjectWithTasks
}

// ProjectView is a project with its tasks and owner.
type ProjectView struct {
    Project
    Tasks  []Task
    Person *Person
}

// TaskView is a task with its project and that project's owner.
type TaskView struct {
    Task
    Project *Project
    Person  *Person
}

// FindPerson returns the first person with the given id.
func FindPerson(people []Person, id int) (Person, bool) {
    for _, p := range people {
        if p.ID == id { return p, true }
    }
    return Person{}, false
}

// FindProject returns the first project with the given id.
func FindProject(projects []Project, id int) (Project, bool) {
    for _, p := range projects {
        if p.ID == id { return p, true }
    }
    return Project{}, false
}

// FindTask returns the first task with the given id.
func FindTask(tasks []Task, id int) (Task, bool) {
    for _, t := range tasks {
        if t.ID == id { return t, true }
    }
    return Task{}, false
}

// TasksOf returns the tasks referencing projectID, in insertion order. Never nil.
func TasksOf(tasks []Task, projectID int) []Task {
    out := make([]Task, 0)
    for _, t := range tasks {
        if SameRef(t.ProjectID, projectID) { out = append(out, t) }
    }
    return out
}

// BuildPersonView joins a person with their projects and those projects' tasks.
func BuildPersonView(s Snapshot, id int) (PersonView, bool) {
    p, ok := FindPerson(s.People, id)
    if !ok { return PersonView{}, false }
    v := PersonView{Person: p, Projects: make([]ProjectWithTasks, 0)}
    for _, pr := range s.Projects {
        if !SameRef(pr.PersonID, id) { continue }
        v.Projects = append(v.Projects, ProjectWithTasks{Project: pr, Tasks: TasksOf(s.Tasks, pr.ID)})
    }
    return v, true
}

// BuildProjectView joins a project with its tasks and owner. A dangling owner renders as nil.
func BuildProjectView(s Snapshot, id int) (ProjectView, bool) {
    pr, ok := FindProject(s.Projects, id)
    if !ok { return ProjectView{}, false }
    v := ProjectView{Project: pr, Tasks: TasksOf(s.Tasks, id)}
    if pr.PersonID != nil {
        if owner, ok := FindPerson(s.People, *pr.PersonID); ok { v.Person = &owner }
    }
    return v, true
}

// BuildTaskView follows Task→Project→Person.
func BuildTaskView(s Snapshot, id int) (TaskView, bool) {
    t, ok := FindTask(s.Tasks, id)
    if !ok { return TaskView{}, false }
    v := TaskView{Task: t}
    if t.ProjectID == nil { return v, true }
    pr, ok := FindProject(s.Projects, *t.ProjectID)
    if !ok { return v, true }
    v.Project = &pr
    if pr.PersonID != nil {
        if owner, ok := FindPerson(s.People, *pr.PersonID); ok { v.Person = &owner }
    }
    return v, true
}

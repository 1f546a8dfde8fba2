package v1

import (
    "time"

    "github.com/tinoosan/taskboard/internal/taskboard"
)

// People

type postPersonRequest struct {
    Name  string `json:"name"`
    Email string `json:"email"`
    Role  string `json:"role"`
}

type putPersonRequest struct {
    Name  taskboard.Field[string] `json:"name"`
    Email taskboard.Field[string] `json:"email"`
    Role  taskboard.Field[string] `json:"role"`
}

type personResponse struct {
    ID    int    `json:"id"`
    Name  string `json:"name"`
    Email string `json:"email"`
    Role  string `json:"role"`
}

type personDetailResponse struct {
    personResponse
    Projects []projectWithTasksResponse `json:"projects"`
}

// Projects

type postProjectRequest struct {
    Name        string `json:"name"`
    Description string `json:"description"`
    PersonID    *int   `json:"personId"`
}

type putProjectRequest struct {
    Name        taskboard.Field[string] `json:"name"`
    Description taskboard.Field[string] `json:"description"`
    PersonID    taskboard.Field[int]    `json:"personId"`
}

type projectResponse struct {
    ID          int       `json:"id"`
    Name        string    `json:"name"`
    Description string    `json:"description"`
    CreatedAt   time.Time `json:"createdAt"`
    PersonID    *int      `json:"personId"`
}

type projectWithTasksResponse struct {
    projectResponse
    Tasks []taskResponse `json:"tasks"`
}

type projectDetailResponse struct {
    projectResponse
    Tasks  []taskResponse  `json:"tasks"`
    Person *personResponse `json:"person"`
}

// Tasks

type postTaskRequest struct {
    Title       string `json:"title"`
    Description string `json:"description"`
    Status      string `json:"status"`
    ProjectID   *int   `json:"projectId"`
}

type putTaskRequest struct {
    Title       taskboard.Field[string] `json:"title"`
    Description taskboard.Field[string] `json:"description"`
    Status      taskboard.Field[string] `json:"status"`
    ProjectID   taskboard.Field[int]    `json:"projectId"`
}

type taskResponse struct {
    ID          int    `json:"id"`
    Title       string `json:"title"`
    Description string `json:"description"`
    Status      string `json:"status"`
    ProjectID   *int   `json:"projectId"`
}

type taskDetailResponse struct {
    taskResponse
    Project *projectResponse `json:"project"`
    Person  *personResponse  `json:"person"`
}

func toPersonResponse(p taskboard.Person) personResponse {
    return personResponse{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role}
}

func toProjectResponse(p taskboard.Project) projectResponse {
    return projectResponse{ID: p.ID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt, PersonID: p.PersonID}
}

func toTaskResponse(t taskboard.Task) taskResponse {
    return taskResponse{ID: t.ID, Title: t.Title, Description: t.Description, Status: t.Status, ProjectID: t.ProjectID}
}

func toTaskResponses(ts []taskboard.Task) []taskResponse {
    out := make([]taskResponse, 0, len(ts))
    for _, t := range ts { out = append(out, toTaskResponse(t)) }
    return out
}

func toPersonDetail(v taskboard.PersonView) personDetailResponse {
    out := personDetailResponse{personResponse: toPersonResponse(v.Person), Projects: make([]projectWithTasksResponse, 0, len(v.Projects))}
    for _, p := range v.Projects {
        out.Projects = append(out.Projects, projectWithTasksResponse{projectResponse: toProjectResponse(p.Project), Tasks: toTaskResponses(p.Tasks)})
    }
    return out
}

func toProjectDetail(v taskboard.ProjectView) projectDetailResponse {
    out := projectDetailResponse{projectResponse: toProjectResponse(v.Project), Tasks: toTaskResponses(v.Tasks)}
    if v.Person != nil {
        pr := toPersonResponse(*v.Person)
        out.Person = &pr
    }
    return out
}

func toTaskDetail(v taskboard.TaskView) taskDetailResponse {
    out := taskDetailResponse{taskResponse: toTaskResponse(v.Task)}
    if v.Project != nil {
        pr := toProjectResponse(*v.Project)
        out.Project = &pr
    }
    if v.Person != nil {
        pr := toPersonResponse(*v.Person)
        out.Person = &pr
    }
    return out
}

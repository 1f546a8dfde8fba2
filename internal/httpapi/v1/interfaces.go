package v1

import (
    "context"

    "github.com/tinoosan/taskboard/internal/service/person"
    "github.com/tinoosan/taskboard/internal/service/project"
    "github.com/tinoosan/taskboard/internal/service/task"
)

// Store composes the read and write operations the services need.
// It is a convenience union satisfied by every storage backend.
type Store interface {
    person.Repo
    person.Writer
    project.Repo
    project.Writer
    task.Repo
    task.Writer
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
    Ready(ctx context.Context) error
}

package postgres

import (
    "github.com/tinoosan/taskboard/internal/service/person"
    "github.com/tinoosan/taskboard/internal/service/project"
    "github.com/tinoosan/taskboard/internal/service/task"
)

var (
    _ person.Repo    = (*Store)(nil)
    _ person.Writer  = (*Store)(nil)
    _ project.Repo   = (*Store)(nil)
    _ project.Writer = (*Store)(nil)
    _ task.Repo      = (*Store)(nil)
    _ task.Writer    = (*Store)(nil)
)

package v1

import (
    "github.com/tinoosan/taskboard/internal/storage/memory"
    "github.com/tinoosan/taskboard/internal/storage/postgres"
    "github.com/tinoosan/taskboard/internal/storage/sqlite"
)

// Compile-time interface assertions for the storage backends against the HTTP API interfaces.
var (
    _ Store        = (*memory.Store)(nil)
    _ Store        = (*sqlite.Store)(nil)
    _ Store        = (*postgres.Store)(nil)
    _ ReadyChecker = (*sqlite.Store)(nil)
    _ ReadyChecker = (*postgres.Store)(nil)
)

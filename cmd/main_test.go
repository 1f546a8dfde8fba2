package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/tinoosan/taskboard/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "loud": slog.LevelInfo}
	for in, want := range cases {
		if got := parseLogLevel(in).Level(); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpenStore_MemoryIsSeeded(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, closeFn, err := openStore(context.Background(), config.Default(), logger)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if closeFn != nil {
		t.Fatalf("memory store needs no close")
	}
	people, err := store.ListPeople(context.Background())
	if err != nil || len(people) != 1 {
		t.Fatalf("expected seeded person, got %v %v", people, err)
	}
}

func TestOpenStore_SQLiteSeedsOnlyWhenAsked(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Default()
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "taskboard.db")

	store, closeFn, err := openStore(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn()
	tasks, err := store.ListTasks(context.Background())
	if err != nil || len(tasks) != 0 {
		t.Fatalf("expected empty sqlite store, got %v %v", tasks, err)
	}
}

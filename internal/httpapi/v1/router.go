// Package v1 wires the HTTP surface of the taskboard service under /api/v1.
// It keeps handlers thin, delegating business rules to the service layer.
package v1

import (
    "log/slog"
    "net/http"
    "sync"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"

    "github.com/tinoosan/taskboard/internal/service/person"
    "github.com/tinoosan/taskboard/internal/service/project"
    "github.com/tinoosan/taskboard/internal/service/task"
)

// Server wires handlers and middleware using Chi.
type Server struct {
    people   person.Service
    projects project.Service
    tasks    task.Service
    ready    ReadyChecker
    log      *slog.Logger
    rt       *chi.Mux

    idemMu sync.Mutex
    idem   map[string]*storedResponse
}

// Option customizes a Server.
type Option func(*options)

type options struct {
    projectOpts []project.Option
}

// WithProjectOptions forwards options to the project service (e.g. a fixed clock in tests).
func WithProjectOptions(opts ...project.Option) Option {
    return func(o *options) { o.projectOpts = append(o.projectOpts, opts...) }
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging, panic recovery and internal error reporting.
func New(store Store, logger *slog.Logger, opts ...Option) *Server {
    var o options
    for _, opt := range opts { opt(&o) }

    r := chi.NewRouter()
    r.Use(chimw.RequestID)
    r.Use(requestLogger(logger))
    r.Use(recoverer(logger))
    r.Use(metricsMiddleware)

    s := &Server{
        people:   person.New(store, store),
        projects: project.New(store, store, o.projectOpts...),
        tasks:    task.New(store, store),
        log:      logger,
        rt:       r,
        idem:     make(map[string]*storedResponse),
    }
    if rc, ok := any(store).(ReadyChecker); ok { s.ready = rc }
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
    s.rt.NotFound(func(w http.ResponseWriter, r *http.Request) { notFound(w, "Not found") })
    s.rt.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
        writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
    })

    s.rt.Route("/api/v1", func(r chi.Router) {
        // People
        r.With(jsonBody, s.idempotent, s.validatePostPerson()).Post("/people", s.postPerson)
        r.Get("/people", s.listPeople)
        r.Get("/people/{id}", s.getPerson)
        r.With(jsonBody).Put("/people/{id}", s.putPerson)
        r.Delete("/people/{id}", s.deletePerson)
        // Projects
        r.With(jsonBody, s.idempotent, s.validatePostProject()).Post("/projects", s.postProject)
        r.Get("/projects", s.listProjects)
        r.Get("/projects/{id}", s.getProject)
        r.With(jsonBody).Put("/projects/{id}", s.putProject)
        r.Delete("/projects/{id}", s.deleteProject)
        // Tasks
        r.With(jsonBody, s.idempotent, s.validatePostTask()).Post("/tasks", s.postTask)
        r.Get("/tasks", s.listTasks)
        r.Get("/tasks/{id}", s.getTask)
        r.With(jsonBody).Put("/tasks/{id}", s.putTask)
        r.Delete("/tasks/{id}", s.deleteTask)
    })

    // Health and metrics (unversioned)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}

package v1

import (
    "context"
    "net/http"

    "github.com/tinoosan/taskboard/internal/taskboard"
)

type ctxKey string

const ctxKeyPostPerson ctxKey = "validatedPostPerson"
const ctxKeyPostProject ctxKey = "validatedPostProject"
const ctxKeyPostTask ctxKey = "validatedPostTask"

// validatePostPerson decodes the POST /people body, checks required fields through the
// service and stores the domain value in the request context for the handler to use.
func (s *Server) validatePostPerson() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postPersonRequest
            if !readJSON(w, r, &req) { return }
            p := taskboard.Person{Name: req.Name, Email: req.Email, Role: req.Role}
            if err := s.people.ValidateCreate(p); err != nil {
                s.writeServiceErr(w, r, err)
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyPostPerson, p)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validatePostProject decodes the POST /projects body. The personId check happens in the store.
func (s *Server) validatePostProject() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postProjectRequest
            if !readJSON(w, r, &req) { return }
            p := taskboard.Project{Name: req.Name, Description: req.Description, PersonID: req.PersonID}
            if err := s.projects.ValidateCreate(p); err != nil {
                s.writeServiceErr(w, r, err)
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyPostProject, p)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validatePostTask decodes the POST /tasks body.
func (s *Server) validatePostTask() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postTaskRequest
            if !readJSON(w, r, &req) { return }
            t := taskboard.Task{Title: req.Title, Description: req.Description, Status: req.Status, ProjectID: req.ProjectID}
            if err := s.tasks.ValidateCreate(t); err != nil {
                s.writeServiceErr(w, r, err)
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyPostTask, t)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

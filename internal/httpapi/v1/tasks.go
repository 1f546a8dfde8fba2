package v1

import (
    "net/http"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

func (s *Server) postTask(w http.ResponseWriter, r *http.Request) {
    in, _ := r.Context().Value(ctxKeyPostTask).(taskboard.Task)
    t, err := s.tasks.Create(r.Context(), in)
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusCreated, toTaskResponse(t))
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
    tasks, err := s.tasks.List(r.Context())
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusOK, toTaskResponses(tasks))
}

// getTask handles GET /tasks/{id}; the person is resolved through the task's project.
func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r, errs.EntityTask)
    if !ok { return }
    v, err := s.tasks.Get(r.Context(), id)
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusOK, toTaskDetail(v))
}

// putTask handles PUT /tasks/{id}. A blank title or status keeps the stored value.
func (s *Server) putTask(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r, errs.EntityTask)
    if !ok { return }
    var req putTaskRequest
    if !readJSON(w, r, &req) { return }
    patch := taskboard.TaskPatch{Title: req.Title, Description: req.Description, Status: req.Status, ProjectID: req.ProjectID}
    t, err := s.tasks.Update(r.Context(), id, patch)
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusOK, toTaskResponse(t))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r, errs.EntityTask)
    if !ok { return }
    if err := s.tasks.Delete(r.Context(), id); err != nil { s.writeServiceErr(w, r, err); return }
    w.WriteHeader(http.StatusNoContent)
}

package v1

import (
    "net/http"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

func (s *Server) postProject(w http.ResponseWriter, r *http.Request) {
    in, _ := r.Context().Value(ctxKeyPostProject).(taskboard.Project)
    p, err := s.projects.Create(r.Context(), in)
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusCreated, toProjectResponse(p))
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
    projects, err := s.projects.List(r.Context())
    if err != nil { s.writeServiceErr(w, r, err); return }
    out := make([]projectResponse, 0, len(projects))
    for _, p := range projects { out = append(out, toProjectResponse(p)) }
    toJSON(w, http.StatusOK, out)
}

// getProject handles GET /projects/{id} with its tasks and owner (null when unset or deleted).
func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r, errs.EntityProject)
    if !ok { return }
    v, err := s.projects.Get(r.Context(), id)
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusOK, toProjectDetail(v))
}

// putProject handles PUT /projects/{id}. personId: absent or 0 keeps, null clears.
func (s *Server) putProject(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r, errs.EntityProject)
    if !ok { return }
    var req putProjectRequest
    if !readJSON(w, r, &req) { return }
    patch := taskboard.ProjectPatch{Name: req.Name, Description: req.Description, PersonID: req.PersonID}
    p, err := s.projects.Update(r.Context(), id, patch)
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusOK, toProjectResponse(p))
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r, errs.EntityProject)
    if !ok { return }
    if err := s.projects.Delete(r.Context(), id); err != nil { s.writeServiceErr(w, r, err); return }
    w.WriteHeader(http.StatusNoContent)
}

package v1

import (
    "net/http"
    "strconv"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/taskboard/internal/errs"
    "github.com/tinoosan/taskboard/internal/taskboard"
)

// pathID parses {id} as a base-10 integer. A non-numeric id is answered like a missed lookup.
func pathID(w http.ResponseWriter, r *http.Request, entity string) (int, bool) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        notFound(w, errs.NotFound(entity).Error())
        return 0, false
    }
    return id, true
}

func (s *Server) postPerson(w http.ResponseWriter, r *http.Request) {
    in, _ := r.Context().Value(ctxKeyPostPerson).(taskboard.Person)
    p, err := s.people.Create(r.Context(), in)
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusCreated, toPersonResponse(p))
}

func (s *Server) listPeople(w http.ResponseWriter, r *http.Request) {
    people, err := s.people.List(r.Context())
    if err != nil { s.writeServiceErr(w, r, err); return }
    out := make([]personResponse, 0, len(people))
    for _, p := range people { out = append(out, toPersonResponse(p)) }
    toJSON(w, http.StatusOK, out)
}

// getPerson handles GET /people/{id} and nests the person's projects with their tasks.
func (s *Server) getPerson(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r, errs.EntityPerson)
    if !ok { return }
    v, err := s.people.Get(r.Context(), id)
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusOK, toPersonDetail(v))
}

func (s *Server) putPerson(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r, errs.EntityPerson)
    if !ok { return }
    var req putPersonRequest
    if !readJSON(w, r, &req) { return }
    p, err := s.people.Update(r.Context(), id, taskboard.PersonPatch{Name: req.Name, Email: req.Email, Role: req.Role})
    if err != nil { s.writeServiceErr(w, r, err); return }
    toJSON(w, http.StatusOK, toPersonResponse(p))
}

func (s *Server) deletePerson(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r, errs.EntityPerson)
    if !ok { return }
    if err := s.people.Delete(r.Context(), id); err != nil { s.writeServiceErr(w, r, err); return }
    w.WriteHeader(http.StatusNoContent)
}

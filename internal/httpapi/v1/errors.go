package v1

import (
    "errors"
    "net/http"

    chimw "github.com/go-chi/chi/v5/middleware"

    "github.com/tinoosan/taskboard/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
    Message string `json:"message"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
    toJSON(w, status, errorResponse{Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg) }
func notFound(w http.ResponseWriter, msg string)   { writeErr(w, http.StatusNotFound, msg) }
func conflict(w http.ResponseWriter, msg string)   { writeErr(w, http.StatusConflict, msg) }

// writeServiceErr maps service and store errors onto status codes.
// Anything unrecognized is logged and answered with a generic 500.
func (s *Server) writeServiceErr(w http.ResponseWriter, r *http.Request, err error) {
    var ve *errs.ValidationError
    var nf *errs.NotFoundError
    switch {
    case errors.As(err, &ve):
        badRequest(w, ve.Error())
    case errors.As(err, &nf):
        notFound(w, nf.Error())
    case errors.Is(err, errs.ErrInvalid):
        badRequest(w, err.Error())
    case errors.Is(err, errs.ErrNotFound):
        notFound(w, "Not found")
    case errors.Is(err, errs.ErrConflict):
        conflict(w, err.Error())
    default:
        s.log.Error("request failed", "req_id", chimw.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
        writeErr(w, http.StatusInternalServerError, "internal error")
    }
}

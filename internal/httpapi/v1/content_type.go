package v1

import (
    "mime"
    "net/http"
)

// requireJSON ensures the request has Content-Type application/json (optionally with params).
// A missing Content-Type is accepted. Writes 415 if not JSON and returns false.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
    ct := r.Header.Get("Content-Type")
    if ct == "" { return true }
    mt, _, err := mime.ParseMediaType(ct)
    if err != nil || mt != "application/json" {
        writeErr(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
        return false
    }
    return true
}

// jsonBody is the middleware form of requireJSON for routes that take a body.
func jsonBody(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !requireJSON(w, r) { return }
        next.ServeHTTP(w, r)
    })
}

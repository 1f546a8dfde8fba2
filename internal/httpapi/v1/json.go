package v1

import (
    "encoding/json"
    "errors"
    "io"
    "net/http"
)

// toJSON writes a JSON response with status code.
func toJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes a single JSON object from the request body into v.
// Unknown fields are rejected and an empty body decodes as {}.
func decodeJSON(r *http.Request, v any) error {
    dec := json.NewDecoder(r.Body)
    dec.DisallowUnknownFields()
    if err := dec.Decode(v); err != nil {
        if errors.Is(err, io.EOF) { return nil }
        return err
    }
    return nil
}

// readJSON decodes the body or answers 400 and returns false.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
    if err := decodeJSON(r, v); err != nil {
        badRequest(w, "invalid JSON: "+err.Error())
        return false
    }
    return true
}

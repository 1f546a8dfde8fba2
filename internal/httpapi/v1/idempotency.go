package v1

import (
    "bytes"
    "crypto/sha256"
    "encoding/hex"
    "encoding/json"
    "io"
    "net/http"

    "github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

// storedResponse is what a create request produced for a given Idempotency-Key.
// done is false while the first request is still running.
type storedResponse struct {
    BodyHash string
    Status   int
    Payload  []byte
    done     bool
}

func hashBytes(b []byte) string {
    h := sha256.Sum256(b)
    return hex.EncodeToString(h[:])
}

// normalizeBody compacts JSON so whitespace differences do not count as a different body.
func normalizeBody(b []byte) []byte {
    var buf bytes.Buffer
    if err := json.Compact(&buf, b); err != nil { return b }
    return buf.Bytes()
}

// idempotent replays the stored response when a create is retried with the same
// Idempotency-Key and body. Requests without the header pass straight through.
func (s *Server) idempotent(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        key := r.Header.Get(idempotencyHeader)
        if key == "" { next.ServeHTTP(w, r); return }
        if _, err := uuid.Parse(key); err != nil {
            badRequest(w, "Idempotency-Key must be a UUID")
            return
        }
        body, err := io.ReadAll(r.Body)
        if err != nil { badRequest(w, "invalid body: "+err.Error()); return }
        r.Body = io.NopCloser(bytes.NewReader(body))
        h := hashBytes(normalizeBody(body))
        slot := r.URL.Path + " " + key

        s.idemMu.Lock()
        if prev, ok := s.idem[slot]; ok {
            hash, done, status, payload := prev.BodyHash, prev.done, prev.Status, prev.Payload
            s.idemMu.Unlock()
            switch {
            case hash != h:
                conflict(w, "idempotency key reused with a different body")
            case !done:
                conflict(w, "a request with this idempotency key is in progress")
            default:
                w.Header().Set("Content-Type", "application/json")
                w.Header().Set("Idempotent-Replayed", "true")
                w.WriteHeader(status)
                _, _ = w.Write(payload)
            }
            return
        }
        s.idem[slot] = &storedResponse{BodyHash: h}
        s.idemMu.Unlock()

        rw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
        stored := false
        defer func() {
            // a panic leaves nothing to replay
            if !stored { s.dropResponse(slot) }
        }()
        next.ServeHTTP(rw, r)
        s.storeResponse(slot, h, rw)
        stored = true
    })
}

type captureWriter struct {
    http.ResponseWriter
    status int
    buf    []byte
}

func (w *captureWriter) WriteHeader(code int) { w.status = code; w.ResponseWriter.WriteHeader(code) }
func (w *captureWriter) Write(b []byte) (int, error) {
    w.buf = append(w.buf, b...)
    return w.ResponseWriter.Write(b)
}

// storeResponse keeps the outcome for replay. Server errors are not kept so the client can retry.
func (s *Server) storeResponse(slot, bodyHash string, rw *captureWriter) {
    if rw.status >= http.StatusInternalServerError { s.dropResponse(slot); return }
    s.idemMu.Lock()
    s.idem[slot] = &storedResponse{BodyHash: bodyHash, Status: rw.status, Payload: append([]byte(nil), rw.buf...), done: true}
    s.idemMu.Unlock()
}

func (s *Server) dropResponse(slot string) {
    s.idemMu.Lock()
    delete(s.idem, slot)
    s.idemMu.Unlock()
}

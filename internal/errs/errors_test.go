package errs

import (
    "errors"
    "fmt"
    "testing"
)

func TestValidationError_MessageAndSentinel(t *testing.T) {
    err := fmt.Errorf("create person: %w", Required("email"))
    var ve *ValidationError
    if !errors.As(err, &ve) { t.Fatalf("expected ValidationError in chain") }
    if ve.Error() != "Email is required" { t.Fatalf("unexpected message: %q", ve.Error()) }
    if !errors.Is(err, ErrInvalid) { t.Fatalf("expected ErrInvalid match") }
    if errors.Is(err, ErrNotFound) { t.Fatalf("did not expect ErrNotFound match") }
}

func TestNotFoundError_MessageAndSentinel(t *testing.T) {
    err := fmt.Errorf("update project: %w", NotFound(EntityPerson))
    var nf *NotFoundError
    if !errors.As(err, &nf) || nf.Entity != "Person" { t.Fatalf("expected NotFoundError for Person, got %v", err) }
    if nf.Error() != "Person not found" { t.Fatalf("unexpected message: %q", nf.Error()) }
    if !errors.Is(err, ErrNotFound) { t.Fatalf("expected ErrNotFound match") }
}

package taskboard

import (
    "bytes"
    "encoding/json"
)

// Field carries a JSON value that can be absent, explicitly null, or set.
// The zero value is absent.
type Field[T any] struct {
    Set   bool
    Null  bool
    Value T
}

// Of returns a Field holding v.
func Of[T any](v T) Field[T] { return Field[T]{Set: true, Value: v} }

// Null returns an explicit null Field.
func Null[T any]() Field[T] { return Field[T]{Set: true, Null: true} }

// UnmarshalJSON marks the field present; null is recorded separately from the value.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
    f.Set = true
    if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
        f.Null = true
        var zero T
        f.Value = zero
        return nil
    }
    f.Null = false
    return json.Unmarshal(b, &f.Value)
}

// MarshalJSON encodes absent and null fields as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
    if !f.Set || f.Null { return []byte("null"), nil }
    return json.Marshal(f.Value)
}

// HasValue reports whether the field was sent with a non-null value.
func (f Field[T]) HasValue() bool { return f.Set && !f.Null }

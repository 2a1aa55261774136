package domain

import "encoding/json"

// Reference is a relationship field that may be lazily or eagerly resolved.
// It is always in exactly one of two states: unresolved (id only) or
// resolved (value attached). Callers branch on IsResolved instead of
// inspecting payload shape.
type Reference[T any] struct {
	id       string
	value    *T
	resolved bool
}

// Unresolved builds a bare-id reference.
func Unresolved[T any](id string) Reference[T] {
	return Reference[T]{id: id}
}

// Resolved builds a reference carrying its target value.
func Resolved[T any](id string, value T) Reference[T] {
	return Reference[T]{id: id, value: &value, resolved: true}
}

// ID returns the referenced id in either state.
func (r Reference[T]) ID() string {
	return r.id
}

// IsResolved reports whether the target value is attached.
func (r Reference[T]) IsResolved() bool {
	return r.resolved
}

// Value returns the attached target. ok is false for unresolved references.
func (r Reference[T]) Value() (v T, ok bool) {
	if !r.resolved {
		return v, false
	}
	return *r.value, true
}

// Resolve returns a resolved copy of the reference.
func (r Reference[T]) Resolve(value T) Reference[T] {
	return Resolved(r.id, value)
}

// MarshalJSON emits the bare id for unresolved references and the expanded
// target for resolved ones.
func (r Reference[T]) MarshalJSON() ([]byte, error) {
	if r.resolved {
		return json.Marshal(*r.value)
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON accepts a bare id string; expanded payloads stay external.
func (r *Reference[T]) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*r = Unresolved[T](id)
	return nil
}

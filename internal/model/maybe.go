package model

// Maybe carries either a value or an explicit "unavailable" marker, so that
// a failed lookup can be told apart from one that legitimately found nothing.
type Maybe[T any] struct {
	value  T
	ok     bool
	reason string
}

// Some wraps an available value.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// Unavailable marks a value that could not be obtained.
func Unavailable[T any](reason string) Maybe[T] {
	return Maybe[T]{reason: reason}
}

// Get returns the value and whether it is available.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// Available reports whether a value is present.
func (m Maybe[T]) Available() bool { return m.ok }

// Reason explains why the value is unavailable. Empty when available.
func (m Maybe[T]) Reason() string { return m.reason }

// OrElse returns the value, or def when unavailable.
func (m Maybe[T]) OrElse(def T) T {
	if m.ok {
		return m.value
	}
	return def
}

// Package store holds the roster. Implementations are not safe for
// concurrent use; callers apply one action at a time.
package store

import "studentresults/internal/model"

// Store is the roster contract shared by every backend.
type Store interface {
	// Append adds student to the end of the roster.
	Append(student model.Student) error
	// RemoveByName removes every student whose name equals name exactly and
	// returns how many were removed.
	RemoveByName(name string) (int, error)
	// Clear empties the roster.
	Clear() error
	// Snapshot returns a copy of the roster in insertion order.
	Snapshot() ([]model.Student, error)
}

package domain

import "fmt"

// ErrNotFound is returned when an id is absent from its store.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ErrDuplicate is returned when an id is already present in its store.
type ErrDuplicate struct {
	Entity EntityType
	ID     string
}

func (e ErrDuplicate) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.ID)
}

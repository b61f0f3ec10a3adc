package core

import "mecore/pkg/domain"

type (
	// ErrNotFound is returned when an id is absent from its store.
	ErrNotFound = domain.ErrNotFound
	// ErrDuplicate is returned when an id is already taken.
	ErrDuplicate = domain.ErrDuplicate
)

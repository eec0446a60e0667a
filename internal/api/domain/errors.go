package domain

import (
	"errors"
)

var (
	// ErrUniqueViolation is returned when an insert collides with a unique column
	ErrUniqueViolation = errors.New("unique constraint violated")

	// ErrForeignKeyViolation is returned when a row references a missing parent
	ErrForeignKeyViolation = errors.New("foreign key constraint violated")
)

package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("resource not found")
	// ErrStudentNotFound signals that no student matches the requested identifier.
	ErrStudentNotFound = fmt.Errorf("student: %w", ErrNotFound)
)

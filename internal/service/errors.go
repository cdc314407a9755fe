package service

import (
	"errors"
	"fmt"

	"github.com/jefanko/app-updates/internal/milestone"
	"github.com/jefanko/app-updates/internal/optimistic"
)

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when the target is in a state that forbids the action
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when no user is signed in
	ErrUnauthorized = errors.New("unauthorized")
)

// mutationError translates mirror errors into service errors
func mutationError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, optimistic.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, optimistic.ErrPendingCreate):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// milestoneError translates milestone transform errors into service errors
func milestoneError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, milestone.ErrMilestoneNotFound), errors.Is(err, milestone.ErrSubMilestoneNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, milestone.ErrDerivedCompletion):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

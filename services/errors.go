package services

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrSubtaskNotFound    = errors.New("subtask not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrResourceExists     = errors.New("resource already exists")
	ErrInternal           = errors.New("internal server error")

	// ErrValidation marks input rejected before any store write. Specific
	// causes wrap it so callers can match either way.
	ErrValidation    = errors.New("validation error")
	ErrTitleRequired = fmt.Errorf("%w: title is required", ErrValidation)
)

package shared

import "errors"

var (

	// common errors
	ErrNotFound = errors.New("not found")

	// auth-specific errors
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// task-specific errors
	ErrValidation = errors.New("validation error")
)

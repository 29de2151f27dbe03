package model

import "errors"

var (
	// Auth related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrNoSession          = errors.New("no session")

	// Backend related errors
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNotFound           = errors.New("not found")

	// Validation errors caught before any request is sent
	ErrEmptyName     = errors.New("name is required")
	ErrNameUnchanged = errors.New("new name must differ from old name")
	ErrNoFiles       = errors.New("no files selected")
)

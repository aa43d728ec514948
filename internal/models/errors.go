package models

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrUnauthenticated    = errors.New("login required")
	ErrUnauthorized       = errors.New("not allowed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTransport          = errors.New("mail relay failed")
	ErrPasswordTooLong    = errors.New("password longer than 72 bytes")
)

// FILE: internal/service/errors.go
package service

import "errors"

var (
	// ErrInvalidRole rejects client-sent roles other than "user".
	ErrInvalidRole = errors.New("only the 'user' role may send chat messages")

	// ErrSessionNotFound means no chat session exists for the given id.
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrSessionForbidden means the session exists but belongs to another user.
	ErrSessionForbidden = errors.New("chat session belongs to another user")

	// ErrUserNotFound means the user does not exist or is inactive.
	ErrUserNotFound = errors.New("user not found or inactive")

	// ErrModelUnavailable means the sentiment model server is not configured.
	ErrModelUnavailable = errors.New("sentiment model server is not configured")
)

package domain

import "errors"

var (
	// ErrInvalidArgument marks a malformed identifier in an otherwise valid request.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
)

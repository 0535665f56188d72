package service

import "errors"

// Service package errors.
var (
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("service: not found")

	// ErrEmptyQuestion indicates a chat message with no content.
	ErrEmptyQuestion = errors.New("service: question must not be empty")
)

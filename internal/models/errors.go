package models

import "errors"

var (
	ErrNoteNotFound       = errors.New("note not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmptyQuery         = errors.New("search query must not be empty")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrEmptyContent       = errors.New("content must not be empty")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrContentTooLong     = errors.New("content exceeds maximum length")
)

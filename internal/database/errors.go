package database

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidStatus = errors.New("invalid booking status")
)

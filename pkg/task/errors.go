package task

import "errors"

// Store errors.
var (
	ErrNotFound     = errors.New("task not found")
	ErrInvalidRange = errors.New("task start date is after its end date")
	ErrEmptyTitle   = errors.New("task title is empty")
	ErrDuplicateID  = errors.New("task id already exists")
)

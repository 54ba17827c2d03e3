package services

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("professional has already applied to this job")
	ErrJobClosed            = errors.New("job is no longer accepting applications")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrLLMDisabled          = errors.New("job extraction is not configured")
)

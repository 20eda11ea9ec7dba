package util

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailRegistered = errors.New("email already registered")
	ErrLevelNotFound   = errors.New("level not found")

	// invalid-state rejections from the lifecycle evaluator
	ErrLevelNotYetAvailable   = errors.New("level not yet available")
	ErrLevelNoLongerAvailable = errors.New("level no longer available")
	ErrLevelAlreadyCompleted  = errors.New("level already completed")
	ErrAttemptsExhausted      = errors.New("attempt limit reached")

	// a conditional write lost a race; the caller decides whether to retry
	ErrConflict = errors.New("write conflict")

	ErrValidation = errors.New("invalid input")
)

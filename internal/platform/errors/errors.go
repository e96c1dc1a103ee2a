package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSkillNotFound   = errors.New("skill not found")
	ErrDuplicateName   = errors.New("skill name already in use")
	ErrNotTracking     = errors.New("no active tracking")
	ErrAlreadyPaused   = errors.New("tracking already paused")
	ErrNotPaused       = errors.New("tracking is not paused")
	ErrSkillTracking   = errors.New("skill owns the active session")
	ErrSessionNotFound = errors.New("session not found")
)

package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Meeting errors
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrOwnerRequired   = errors.New("owner id is required")
)

// Briefing errors
var (
	ErrBriefingNotFound   = errors.New("briefing not found")
	ErrInvalidQualityTier = errors.New("briefing quality must be compact, standard or deep")
)

// Queue errors
var (
	ErrQueueUnavailable = errors.New("job queue unavailable")
	ErrJobNotFound      = errors.New("job not found")
	ErrJobNotClaimable  = errors.New("job already claimed by another worker")
)

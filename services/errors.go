package services

import "errors"

// Sentinel errors dari layer service; controller memetakan ke HTTP status.
var (
	ErrTableNotIdle         = errors.New("table is not available for dining")
	ErrSessionActive        = errors.New("table already has an active dining session")
	ErrSessionCompleted     = errors.New("dining session is already completed")
	ErrTableNotInBuffer     = errors.New("table is not in buffer period")
	ErrInvalidExtension     = errors.New("extension minutes must be at least 1")
	ErrBlacklisted          = errors.New("guest phone is blacklisted")
	ErrDuplicateReservation = errors.New("guest already has a reservation on this date")
	ErrNoTableAssigned      = errors.New("reservation has no table assigned")
)

package app

import (
	"errors"

	"github.com/khrees2412/screener/internal/database"
)

// Sentinel errors for common application errors
var (
	ErrNotInitialized  = errors.New("application not initialized")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrSessionNotFound = database.ErrSessionNotFound
	ErrNoSessions      = errors.New("sessions require the sqlite storage driver")
)

package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrSessionNotFound = errors.New("session not found")
)

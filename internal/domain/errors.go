package domain

import "errors"

var (
	// ErrScenarioNotFound indicates a submitted scenario ID is unknown.
	ErrScenarioNotFound = errors.New("scenario not found")
	// ErrUserNotFound is returned on explicit lookups of unknown users.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound is returned when a game session token does not resolve.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionExpired is returned when a game session outlived its countdown.
	ErrSessionExpired = errors.New("game session expired")
	// ErrInvalidChoice rejects a malformed or out-of-range answer index.
	ErrInvalidChoice = errors.New("invalid choice index")
	// ErrNoScenarios is returned when a draw is requested from an empty catalog.
	ErrNoScenarios = errors.New("no scenarios available")
	// ErrUnauthenticated is returned when no valid session accompanies a request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the caller's role does not allow an action.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned on failed logins.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation rejects malformed record payloads before they reach storage.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is the generic missing-record error for content lookups.
	ErrNotFound = errors.New("record not found")
)

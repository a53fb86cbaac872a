package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidPassword   = errors.New("invalid password")

	// Team errors
	ErrTeamNotFound  = errors.New("team not found")
	ErrAlreadyInTeam = errors.New("user already belongs to a team")
	ErrNoTeam        = errors.New("user does not belong to a team")

	// Integration errors
	ErrCredentialNotFound = errors.New("integration credential not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid token")

	// Analysis errors
	ErrEmptyTranscript = errors.New("transcript must not be empty")

	// Tracking errors
	ErrTrackedCardNotFound = errors.New("tracked card not found")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)

package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")

	ErrActivityNotFound    = errors.New("activity not found")
	ErrInvalidRaceDistance = errors.New("invalid race distance")
	ErrGroupNotFound       = errors.New("group not found")
	ErrNotGroupAdmin       = errors.New("not the group admin")
	ErrAlreadyApplied      = errors.New("application already pending")
	ErrAlreadyMember       = errors.New("already a group member")

	// Sync pipeline taxonomy. Only ErrReauthorizationRequired is fatal for a
	// user's sync attempt; the other two are absorbed by the orchestrator.
	ErrReauthorizationRequired = errors.New("reauthorization required")
	ErrStravaNotConnected      = errors.New("strava account not connected")
	ErrProviderUnavailable     = errors.New("strava unavailable")
	ErrMalformedResponse       = errors.New("malformed strava response")

	ErrSyncTooRecent = errors.New("synced too recently")
)

package services

import "errors"

// Error taxonomy shared by the aggregator, signup coordinator and admin mutations.
// Signup step failures are distinct sentinels so a caller can decide whether a retry is
// safe: re-running the profile upsert is, re-running account creation or chart
// insertion is not.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream store unavailable")

	ErrSignupFailed         = errors.New("account creation failed")
	ErrProfilePersistFailed = errors.New("profile persistence failed")
	ErrChartsPersistFailed  = errors.New("chart persistence failed")
	ErrDeleteFailed         = errors.New("user deletion failed")
)

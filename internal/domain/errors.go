package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrUserNotFound indicates the list collection for a username was missing (unknown or private)
	ErrUserNotFound = errors.New("user list not found")

	// ErrEmptyPlanning indicates planning origin was requested but the Planning lists are empty
	ErrEmptyPlanning = errors.New("planning list is empty")

	// ErrNoMatch indicates every attempt finished without a matching title
	ErrNoMatch = errors.New("no anime matched the filters")

	// ErrTechnical marks candidate-query failures that are not a "no match" outcome
	ErrTechnical = errors.New("catalog request failed")

	// ErrServerOffline indicates the catalog API is unreachable
	ErrServerOffline = errors.New("catalog API is unreachable")

	// ErrQueryFailed indicates the GraphQL response carried errors
	ErrQueryFailed = errors.New("graphql query failed")

	// ErrInvalidResponse indicates the response lacked the expected data field
	ErrInvalidResponse = errors.New("unexpected catalog response")

	// ErrQuotaExceeded indicates a cache write would exceed the storage quota
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrInvalidScoreRange indicates min score is above max score
	ErrInvalidScoreRange = errors.New("minimum score is greater than maximum score")
)

// UserError reports a username that could not be resolved.
type UserError struct {
	Username string
	Err      error
}

func (e *UserError) Error() string {
	return "could not resolve user " + e.Username + ": " + e.Err.Error()
}

func (e *UserError) Unwrap() error { return e.Err }

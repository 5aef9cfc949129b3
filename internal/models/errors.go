package models

import "errors"

// Application-wide standard errors
var (
	// Common resource errors
	ErrNotFound          = errors.New("resource not found")
	ErrDraftNotFound     = errors.New("meal draft not found")
	ErrComponentNotFound = errors.New("meal component not found")
	ErrMealNotFound      = errors.New("meal not found")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized") // Authentication required or failed
	ErrForbidden    = errors.New("forbidden")    // Authenticated, but lacks permission

	// State / precondition errors
	ErrDraftNotEditable = errors.New("draft cannot be edited in its current state")
	ErrDraftNotComplete = errors.New("draft is not complete and cannot be saved")

	// Transport / upstream errors
	ErrUpstreamUnavailable = errors.New("backing store is unavailable")
	ErrInvalidCursor       = errors.New("invalid pagination cursor")

	// General request errors
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = errors.New("invalid input data")
)

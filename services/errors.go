package services

import "errors"

// Error taxonomy surfaced by the service layer. Handlers translate these to
// HTTP statuses with errors.Is; everything else is a 500.
var (
	// ErrNotFound covers both "row absent" and "row not owned by the acting
	// user" so non-owners cannot probe for existence.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned where ownership is checked after the row was
	// already resolved (board items), and the owner differs.
	ErrForbidden = errors.New("not authorized")

	// ErrInvalidOperation marks semantically nonsensical requests, e.g. a
	// cross-kind section move or redeeming an already-redeemed reward.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrCoachUnavailable wraps any failure of the external coach call.
	ErrCoachUnavailable = errors.New("ai coach unavailable")
)

package reservation

import "errors"

var (
	// ErrNotFound: no grid row carries the requested id.
	ErrNotFound = errors.New("reservation not found")

	// ErrSchemaIncomplete: a column the operation must write is missing
	// from the header row under every known alias.
	ErrSchemaIncomplete = errors.New("required column missing")

	// ErrInvalidDecision: a decision outside APPROVED/DENIED.
	ErrInvalidDecision = errors.New("invalid decision")
)

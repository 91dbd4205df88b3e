package service

import (
	"errors"
)

// Sentinel errors surfaced by wallet operations. Callers translate
// them at the boundary; anything else is a storage failure and the
// triggering operation is rolled back in full.
var (
	// ErrInsufficientFunds means a debit would take the balance below zero
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrAlreadyFinalized means the request left the pending state earlier
	ErrAlreadyFinalized = errors.New("request already finalized")

	// ErrNotAuthorized means the actor lacks the required capability
	ErrNotAuthorized = errors.New("not authorized")

	// ErrRecipientNotFound means no account matched the transfer lookup key
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrSelfTransfer means sender and recipient are the same account
	ErrSelfTransfer = errors.New("cannot transfer to yourself")

	// ErrNotFound means a referenced account, request or tournament does not exist
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input was malformed or incomplete
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate means a uniqueness rule was violated
	ErrDuplicate = errors.New("already exists")
)

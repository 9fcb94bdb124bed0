package service

import "errors"

// Validity failures are values so callers can render specific messaging for
// each case (no key vs. expired vs. exhausted) instead of one generic error.
var (
	ErrInvalidRequest = errors.New("invalid invitation request")

	// ErrKeyNotFound means the key string has no matching record.
	ErrKeyNotFound = errors.New("invitation key not found")

	// ErrKeyExpired means the key exists but its validity window elapsed.
	ErrKeyExpired = errors.New("invitation key has expired")

	// ErrKeyExhausted means the key exists but has no uses left.
	ErrKeyExhausted = errors.New("invitation key has no uses left")

	// ErrKeyTaken means an explicitly supplied key string collides with an
	// existing key.
	ErrKeyTaken = errors.New("invitation key already exists")

	// ErrQuotaExceeded means the issuer has no remaining allocation. The
	// invite workflow checks this before creating a key.
	ErrQuotaExceeded = errors.New("no invitations remaining")

	// ErrDuplicateRecipient warns that the recipient email already belongs
	// to an account. Callers decide whether to proceed anyway.
	ErrDuplicateRecipient = errors.New("recipient already has an account")

	// ErrDeliveryFailed wraps a notification hook error. The invitation key
	// persists regardless.
	ErrDeliveryFailed = errors.New("invitation delivery failed")

	ErrUsernameAlreadyTaken = errors.New("username already taken")
)

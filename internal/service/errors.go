package service

import (
	"errors"
	"time"
)

// Expected outcomes are sentinel errors, wrapped with detail via
// fmt.Errorf("%w: ...") where useful. The HTTP layer translates them with
// errors.Is; anything else is an unclassified infrastructure failure.
var (
	// ErrValidation marks malformed input: empty required field, oversized
	// file, bad storage-key prefix, unknown status value.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers both "row absent" and "row owned by someone else";
	// the two are indistinguishable to callers by design.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is a registration conflict on a normalized email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is a failed login or an unusable bearer token.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// timeNow is swapped in tests.
var timeNow = time.Now

package domain

import "errors"

var (
	// ErrCurrencyListMissing indicates the remote service answered but the
	// expected currency array was absent. Callers must treat this as a hard
	// failure, not an empty list.
	ErrCurrencyListMissing = errors.New("currency list missing from response")

	// ErrInvalidAmount indicates a non-numeric or non-positive amount.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrUnknownEndpoint indicates a test-catalog lookup miss.
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrUnknownTestCase indicates the endpoint exists but the named test
	// case does not.
	ErrUnknownTestCase = errors.New("unknown test case")
)

package model

import "errors"

// Fetch failure kinds.
var (
	ErrNetwork           = errors.New("network failure")
	ErrMalformedResponse = errors.New("malformed rates response")
	ErrUnexpectedBase    = errors.New("unexpected base currency")
	ErrUnparseableDate   = errors.New("unparseable rates date")
)

// Command failures.
var (
	ErrUnknownCurrency = errors.New("currency not offered for the reference date")
	ErrInvalidDate     = errors.New("invalid date")
	ErrNothingToShare  = errors.New("no conversion to share")
	ErrUnknownCommand  = errors.New("unknown command")
)

var ErrShareUnavailable = errors.New("sharing is not available")

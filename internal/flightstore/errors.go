package flightstore

import "errors"

var (
	// ErrInit marks schema or index creation failures. Fatal at startup.
	ErrInit = errors.New("storage init error")
	// ErrQuery marks aggregate or search query failures. Callers surface it
	// as a generic service error; the underlying detail stays in logs.
	ErrQuery = errors.New("query error")
)

package core

import "errors"

// Common errors.
var (
	ErrReadOnly       = errors.New("repository is in read-only mode")
	ErrNotFound       = errors.New("binding not found")
	ErrNoTransactions = errors.New("repository does not support transactions")
	ErrNoWatch        = errors.New("repository does not support watching")
)

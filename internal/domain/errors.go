package domain

import "errors"

var (
	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrSameAccount         = errors.New("transfer requires two different accounts")
	ErrMissingAccount      = errors.New("transfer requires both a source and a destination account")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")
)

package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transaction errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrSelfTransfer        = errors.New("cannot transfer to same account")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Authentication errors
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrExpiredToken         = errors.New("token has expired")
	ErrForbidden            = errors.New("token does not grant access to this account")
)

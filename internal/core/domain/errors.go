package domain

import "errors"

var (
	// ErrAccountMissingAddressOrName is returned when registering an account
	// without address or display name.
	ErrAccountMissingAddressOrName = errors.New(
		"account address and name must not be empty",
	)
	// ErrAccountAlreadyExists is returned when registering an address that is
	// already part of the account set.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrAccountNotFound is returned when no account matches the given address.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNoAccounts is returned by operations that need at least one
	// configured account.
	ErrNoAccounts = errors.New("no account configured")
	// ErrUnknownRole is returned when parsing a string that is not a known role.
	ErrUnknownRole = errors.New("role is unknown")
)

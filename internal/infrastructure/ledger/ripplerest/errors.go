package ripplerest

import "errors"

var (
	// ErrMissingAddress is returned if the queried address is empty.
	ErrMissingAddress = errors.New("missing account address")
	// ErrInvalidAddress is returned if the address would alter the request
	// path.
	ErrInvalidAddress = errors.New("invalid account address")
	// ErrInvalidEndpoint is returned if the ledger endpoint is not a valid
	// http(s) or ws(s) URL.
	ErrInvalidEndpoint = errors.New("invalid ledger endpoint")
	// ErrUnexpectedResponse is returned if the ledger replies with an error
	// status or a malformed body.
	ErrUnexpectedResponse = errors.New("unexpected ledger response")
)

package inmemory

import "errors"

var (
	// ErrStoreClosed is returned when accessing a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

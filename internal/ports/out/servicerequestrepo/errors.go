package servicerequestrepo

import "errors"

var (
	// ErrNotFound indicates the requested service request does not exist.
	ErrNotFound = errors.New("service request not found")

	// ErrAlreadyExists indicates a service request already exists with the provided ID.
	ErrAlreadyExists = errors.New("service request already exists")
)

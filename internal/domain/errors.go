package domain

import "errors"

var (
	// ErrFetchFailed covers network failures, non-2xx responses and
	// undecodable payloads from the catalog source. Retryable; the
	// caller's accumulated state is left untouched.
	ErrFetchFailed = errors.New("catalog fetch failed")

	// ErrProductNotFound is returned by single-product lookups for an
	// unknown id.
	ErrProductNotFound = errors.New("product not found")
)

package session

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrOutOfOrder means the result sequence handed to Aggregate was not
	// ascending by frame index. Sort first; never aggregate out of order.
	ErrOutOfOrder = errors.New("results are not ordered by frame index")
)

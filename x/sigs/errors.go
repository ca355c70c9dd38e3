package sigs

import "github.com/iov-one/escrowd/errors"

// ErrInvalidSequence is returned when a signature is not using the next
// sequence of its signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")

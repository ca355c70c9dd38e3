package sigs

import (
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

var _ weave.Msg = (*BumpSequenceMsg)(nil)

// Validate ensures the increment is within the allowed range.
func (msg *BumpSequenceMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.Increment < minSequenceIncrement {
		errs = errors.Append(errs, errors.Field("Increment", errors.ErrInvalidMsg, "must be at least %d", minSequenceIncrement))
	}
	if msg.Increment > maxSequenceIncrement {
		errs = errors.Append(errs, errors.Field("Increment", errors.ErrInvalidMsg, "must not be greater than %d", maxSequenceIncrement))
	}
	return errs
}

// Path returns the routing path for this message.
func (*BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}

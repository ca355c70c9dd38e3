/*
Package errors implements the error classification used across escrowd.

Every failure returned to a client wraps one of the root errors declared in
this package (or registered by an extension with Register). A root error
carries an ABCI code, so clients can tell a duplicate escrow from a missing
one without parsing messages:

	if errors.ErrDuplicate.Is(err) {
		// an escrow with the same maker, seed and mint already exists
	}

Wrap and Wrapf add context while keeping the root error reachable through
the Cause chain. The innermost wrap records a stack trace that can be
printed with %+v.

Field and AppendField group validation problems per attribute, so a message
Validate method can report all invalid fields at once.
*/
package errors

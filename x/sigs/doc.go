/*
Package sigs authenticates transactions with ed25519 signatures.

Every signature carries the public key of the signer and the sequence
number of that key. Sequence numbers are stored per key and must grow by
one with each signed transaction, which stops replay of an already
processed transaction.

The Decorator verifies all signatures of a transaction and stores the
signer addresses in the context, where Authenticate exposes them to
handlers as an x.Authenticator.
*/
package sigs

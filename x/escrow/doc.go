/*
Package escrow implements a two party token swap.

A maker locks tokens of one mint in a vault and asks for an amount of
another mint in return. Any taker paying the asked amount to the maker
receives the whole vault. Until then the maker may refund, which returns
the vault content and closes the escrow.

Escrow and vault addresses are derived from the maker, a maker chosen seed
and the deposited mint. Neither address has a private key. The vault is a
ledger account owned by the escrow address and only this package can act
as that owner, after re-deriving the escrow address from the stored
record.
*/
package escrow

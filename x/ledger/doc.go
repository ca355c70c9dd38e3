/*
Package ledger implements fungible tokens held in custody accounts.

A Mint describes a token and its mint authority. Tokens are held in
Accounts, each owned by a single address and able to hold only one mint.
The associated account of an owner for a mint lives at an address derived
from the owner and the mint, so anyone can find it. Other extensions may
open custody accounts at any address they control, for example a program
derived address that no key can sign for.

Allocating an account costs a storage deposit paid in native lamports from
the payer's Wallet. The deposit is refunded when the account is closed.
*/
package ledger

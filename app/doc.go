/*
Package app contains standard implementations of a number of components.

It glues the extensions together into an abci.Application: a Router that
dispatches messages by path, a chain of Decorators wrapped around it, the
CommitStore layering deliver and check caches over the persistent state, and
StoreApp/BaseApp answering the ABCI calls.
*/
package app

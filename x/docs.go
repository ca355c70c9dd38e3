/*
Package x contains the standard extensions of the escrow daemon.

Extensions implement common functionality (Handler, Decorator, etc.) and
are combined together in cmd/escrowd to construct the application. This
package holds the authentication interface shared by all of them.
*/
package x

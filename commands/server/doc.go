/*
Package server contains the commands shared by weave based daemons: writing
the application state into a tendermint genesis file, validating it and
serving an application over an ABCI socket.
*/
package server

/*
Package gconf provides a toolset for managing extension configuration.

Each extension stores its configuration as a single protobuf message under
the "_c:<package name>" key. The configuration is loaded from the genesis
file, validated and saved once. Handlers load it on demand.
*/
package gconf

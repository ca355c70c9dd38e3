/*
Package weave defines the common interfaces that tie together the store,
the extensions and the ABCI application of escrowd, as well as a few simple
building blocks that are shared by everyone (addresses, program derived
addresses, context helpers).

Context information is passed through context.Context between the app, the
decorators and the handlers. For every value XYZ of type T kept in the
context there are two functions:

  WithXYZ(context.Context, T) context.Context
  GetXYZ(context.Context) (T, ok bool)

WithXYZ panics if the value was already set, so that a lower level module
cannot overwrite what the application declared (chain id, height).
*/
package weave

/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* It is keyed by a primary key, which is usually an address.
* It may possess one or more secondary indexes (1:1 or 1:N).
* Easy queries for one and iteration.

Models are protobuf messages that can validate themselves.
*/
package orm

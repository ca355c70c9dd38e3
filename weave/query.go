package weave

import (
	"fmt"
)

// Query modifiers understood by the orm query handlers.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a raw key and value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns a Model.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler is anything that can process ABCI queries.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister is a function that adds some handlers to this router.
type QueryRegister func(QueryRouter)

// QueryRouter maps an ABCI query path such as "/escrows" to the handler
// serving it. The zero value is not usable, see NewQueryRouter.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns an empty router.
func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll lets every extension add its query paths.
func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register binds a handler to path. Registering the same path twice is a
// programming error and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, dup := r.routes[path]; dup {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

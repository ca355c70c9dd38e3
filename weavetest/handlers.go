package weavetest

import (
	"context"

	"github.com/iov-one/escrowd/weave"
)

// Handler is a mock implementation of the weave.Handler interface. It
// returns the configured results and counts the calls.
//
// When Key is set, the handler writes Key=Value to the store before
// returning, which lets tests observe rollbacks.
type Handler struct {
	checkCall   int
	CheckResult weave.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult weave.DeliverResult
	DeliverErr    error

	Key   []byte
	Value []byte

	// Panic if set is raised by both methods.
	Panic interface{}
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db weave.KVStore) error {
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.Key == nil {
		return nil
	}
	return db.Set(h.Key, h.Value)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

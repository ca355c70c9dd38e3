package utils

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
)

func TestActionTagger(t *testing.T) {
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/take"}}

	h := &weavetest.Handler{}
	res, err := weavetest.Decorate(h, NewActionTagger()).Deliver(context.Background(), store.MemStore(), tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Tags))
	assert.Equal(t, []byte(ActionKey), res.Tags[0].Key)
	assert.Equal(t, []byte("escrow/take"), res.Tags[0].Value)

	h = &weavetest.Handler{DeliverErr: errors.ErrUnauthorized}
	_, err = weavetest.Decorate(h, NewActionTagger()).Deliver(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	bad := &weavetest.Tx{Err: errors.ErrInvalidMsg}
	_, err = weavetest.Decorate(&weavetest.Handler{}, NewActionTagger()).Deliver(context.Background(), store.MemStore(), bad)
	assert.IsErr(t, errors.ErrInvalidMsg, err)
}

package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
	"github.com/iov-one/escrowd/x"
)

func TestChainAuth(t *testing.T) {
	a, b, c := weavetest.NewAddress(), weavetest.NewAddress(), weavetest.NewAddress()

	ctxAuth := &weavetest.CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetAddresses(context.Background(), b, a)
	auth := x.ChainAuth(&weavetest.Auth{Signer: a}, ctxAuth)

	assert.Equal(t, []weave.Address{a, b}, auth.GetAddresses(ctx))
	assert.Equal(t, a, x.MainSigner(ctx, auth))
	assert.Equal(t, true, auth.HasAddress(ctx, b))
	assert.Equal(t, false, auth.HasAddress(ctx, c))

	empty := x.ChainAuth(ctxAuth)
	assert.Nil(t, x.MainSigner(context.Background(), empty))
	assert.Equal(t, false, empty.HasAddress(context.Background(), a))
}

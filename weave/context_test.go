package weave

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	_, ok := GetHeight(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 42)
	h, ok := GetHeight(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(42), h)

	assert.Panics(t, func() { WithHeight(ctx, 43) }, "height is set once per block context")
}

func TestContextBlockTime(t *testing.T) {
	ctx := context.Background()
	_, ok := BlockTime(ctx)
	assert.False(t, ok)

	at := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	got, ok := BlockTime(WithBlockTime(ctx, at))
	require.True(t, ok)
	assert.True(t, at.Equal(got))
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetChainID(ctx))

	ctx = WithChainID(ctx, "escrow-test")
	assert.Equal(t, "escrow-test", GetChainID(ctx))

	assert.Panics(t, func() { WithChainID(ctx, "escrow-other") })
	assert.Panics(t, func() { WithChainID(context.Background(), "bad") })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	var buf bytes.Buffer
	ctx = WithLogger(WithHeight(ctx, 3), log.NewTMLogger(&buf))
	ctx = WithLogInfo(ctx, "escrow", "abc")
	GetLogger(ctx).Info("made")
	assert.Contains(t, buf.String(), "escrow=abc")

	// extra log info keeps the other values
	h, _ := GetHeight(ctx)
	assert.Equal(t, int64(3), h)
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"short":                         false,
		"escrow":                        true,
		"escrow_net-01":                 true,
		"no spaces":                     false,
		"semi;colon":                    false,
		"abcdefghijklmnopqrstu":         false,
		"abcdefghijklmnopqrst":          true,
		"this-chain-id-is-way-too-long": false,
	}
	for id, valid := range cases {
		assert.Equal(t, valid, IsValidChainID(id), id)
	}
}

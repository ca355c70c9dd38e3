package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpSequence(t *testing.T) {
	signer := weavetest.NewAddress()
	unknown := weavetest.NewAddress()

	cases := map[string]struct {
		initSeq   int64
		signer    weave.Address
		msg       *BumpSequenceMsg
		wantCheck *errors.Error
		wantErr   *errors.Error
		wantSeq   int64
	}{
		"bump by one leaves the sequence": {
			initSeq: 5,
			signer:  signer,
			msg:     &BumpSequenceMsg{Metadata: &weave.Metadata{Schema: 1}, Increment: 1},
			wantSeq: 5,
		},
		"bump by many": {
			initSeq: 5,
			signer:  signer,
			msg:     &BumpSequenceMsg{Metadata: &weave.Metadata{Schema: 1}, Increment: 100},
			wantSeq: 104,
		},
		"increment too big": {
			initSeq:   5,
			signer:    signer,
			msg:       &BumpSequenceMsg{Metadata: &weave.Metadata{Schema: 1}, Increment: maxSequenceIncrement + 1},
			wantCheck: errors.ErrInvalidMsg,
			wantErr:   errors.ErrInvalidMsg,
			wantSeq:   5,
		},
		"zero increment": {
			signer:    signer,
			msg:       &BumpSequenceMsg{Metadata: &weave.Metadata{Schema: 1}},
			wantCheck: errors.ErrInvalidMsg,
			wantErr:   errors.ErrInvalidMsg,
		},
		"overflow": {
			initSeq:   maxSequenceValue - 10,
			signer:    signer,
			msg:       &BumpSequenceMsg{Metadata: &weave.Metadata{Schema: 1}, Increment: 11},
			wantCheck: errors.ErrOverflow,
			wantErr:   errors.ErrOverflow,
			wantSeq:   maxSequenceValue - 10,
		},
		"signer without a sequence": {
			signer:    unknown,
			msg:       &BumpSequenceMsg{Metadata: &weave.Metadata{Schema: 1}, Increment: 1},
			wantCheck: errors.ErrNotFound,
			wantErr:   errors.ErrNotFound,
		},
		"no signer": {
			msg:       &BumpSequenceMsg{Metadata: &weave.Metadata{Schema: 1}, Increment: 1},
			wantCheck: errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewBucket()
			user := &UserData{Metadata: &weave.Metadata{Schema: 1}, Pubkey: signer, Sequence: tc.initSeq}
			require.NoError(t, b.Put(db, signer, user))

			auth := &weavetest.Auth{Signer: tc.signer}
			rt := testRouter{}
			RegisterRoutes(rt, auth)
			h := rt[pathBumpSequenceMsg]
			tx := &weavetest.Tx{Msg: tc.msg}

			_, err := h.Check(context.Background(), db, tx)
			assert.IsErr(t, tc.wantCheck, err)
			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)

			var got UserData
			require.NoError(t, b.One(db, signer, &got))
			require.Equal(t, tc.wantSeq, got.Sequence)
		})
	}
}

type testRouter map[string]weave.Handler

func (r testRouter) Handle(m weave.Msg, h weave.Handler) {
	r[m.Path()] = h
}

package app

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinResults(t *testing.T) {
	models := []weave.Model{
		weave.Pair([]byte("k1"), []byte("v1")),
		weave.Pair([]byte("k2"), []byte("v2")),
	}
	got, err := JoinResults(ResultsFromKeys(models), ResultsFromValues(models))
	require.NoError(t, err)
	assert.Equal(t, models, got)

	_, err = JoinResults(ResultsFromKeys(models), ResultsFromValues(models[:1]))
	assert.IsErr(t, errors.ErrInvalidState, err)
}

func TestUnmarshalOneResult(t *testing.T) {
	meta := &weave.Metadata{Schema: 3}
	raw, err := proto.Marshal(meta)
	require.NoError(t, err)
	set, err := proto.Marshal(&ResultSet{Results: [][]byte{raw}})
	require.NoError(t, err)

	var got weave.Metadata
	require.NoError(t, UnmarshalOneResult(set, &got))
	assert.Equal(t, uint32(3), got.Schema)

	empty, err := proto.Marshal(&ResultSet{})
	require.NoError(t, err)
	assert.IsErr(t, errors.ErrNotFound, UnmarshalOneResult(empty, &got))
}

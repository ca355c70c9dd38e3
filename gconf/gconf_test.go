package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest/assert"
)

type myConfig struct {
	Number int64         `protobuf:"varint,1,opt,name=number,proto3" json:"number,omitempty"`
	Owner  weave.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *myConfig) Reset()         { *m = myConfig{} }
func (m *myConfig) String() string { return proto.CompactTextString(m) }
func (*myConfig) ProtoMessage()    {}

func (m *myConfig) Validate() error {
	if m.Number < 0 {
		return errors.Wrap(errors.ErrInvalidInput, "number")
	}
	return m.Owner.Validate()
}

func TestSaveLoad(t *testing.T) {
	owner := make(weave.Address, weave.AddressLength)
	owner[0] = 7

	cases := map[string]struct {
		conf        *myConfig
		wantSaveErr *errors.Error
	}{
		"valid": {
			conf: &myConfig{Number: 852151421, Owner: owner},
		},
		"invalid address cannot be saved": {
			conf:        &myConfig{Number: 1, Owner: weave.Address("too short")},
			wantSaveErr: errors.ErrInvalidInput,
		},
		"invalid number cannot be saved": {
			conf:        &myConfig{Number: -1, Owner: owner},
			wantSaveErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "mine", tc.conf)
			if tc.wantSaveErr != nil {
				assert.IsErr(t, tc.wantSaveErr, err)
				return
			}
			assert.Nil(t, err)

			var got myConfig
			assert.Nil(t, Load(db, "mine", &got))
			assert.Equal(t, tc.conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var got myConfig
	assert.IsErr(t, errors.ErrNotFound, Load(store.MemStore(), "mine", &got))
}

func TestInitConfig(t *testing.T) {
	owner := make(weave.Address, weave.AddressLength)
	owner[31] = 1

	raw := `{"conf": {"mine": {"number": 17, "owner": "` + owner.String() + `"}}}`
	var opts weave.Options
	assert.Nil(t, json.Unmarshal([]byte(raw), &opts))

	db := store.MemStore()
	assert.Nil(t, InitConfig(db, opts, "mine", &myConfig{}))

	var got myConfig
	assert.Nil(t, Load(db, "mine", &got))
	assert.Equal(t, int64(17), got.Number)
	assert.Equal(t, owner, got.Owner)

	err := InitConfig(db, opts, "other", &myConfig{})
	assert.IsErr(t, errors.ErrNotFound, err)
}

package pebblestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/pkg/verrors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFindMissingKeysAllMissing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	k1 := model.NewBlobKey(1, [16]byte{1})
	k2 := model.NewBlobKey(1, [16]byte{2})

	missing, err := s.FindMissingKeys(ctx, []model.BlobKey{k1, k2})
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.BlobKey{k1, k2}, missing)
}

func TestPutThenFindMissingKeys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	k1 := model.NewBlobKey(1, [16]byte{1})
	err := s.Put(ctx, model.WriteSet{
		Partition: 1,
		Messages:  []model.MessageInfo{{Key: k1, Size: 3}},
		Payloads:  [][]byte{[]byte("abc")},
	})
	require.NoError(t, err)

	missing, err := s.FindMissingKeys(ctx, []model.BlobKey{k1})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestPutAlreadyExists(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	k1 := model.NewBlobKey(1, [16]byte{1})
	ws := model.WriteSet{Messages: []model.MessageInfo{{Key: k1}}, Payloads: [][]byte{[]byte("x")}}

	require.NoError(t, s.Put(ctx, ws))
	err := s.Put(ctx, ws)
	assert.True(t, errors.Is(err, verrors.ErrExist))
}

func TestDeleteAndIsKeyDeleted(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	k1 := model.NewBlobKey(1, [16]byte{1})
	deleted, err := s.IsKeyDeleted(ctx, k1)
	require.NoError(t, err)
	assert.False(t, deleted)

	err = s.Delete(ctx, model.WriteSet{Messages: []model.MessageInfo{{Key: k1, IsDeleted: true}}})
	require.NoError(t, err)

	deleted, err = s.IsKeyDeleted(ctx, k1)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestPutAfterDeleteIsAlreadyExists(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	k1 := model.NewBlobKey(1, [16]byte{1})
	require.NoError(t, s.Delete(ctx, model.WriteSet{Messages: []model.MessageInfo{{Key: k1, IsDeleted: true}}}))

	err := s.Put(ctx, model.WriteSet{Messages: []model.MessageInfo{{Key: k1}}, Payloads: [][]byte{[]byte("x")}})
	assert.True(t, errors.Is(err, verrors.ErrExist))
}

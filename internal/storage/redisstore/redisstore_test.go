package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

func setupRedis(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := Dial(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestStore_LoadSave(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedis(t)

	_, err := s.Load(ctx, "doc")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Save(ctx, "doc", []byte(`{"v":1}`)))

	raw, err := mr.Get("archdesign:doc:doc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, raw)
	assert.Zero(t, mr.TTL("archdesign:doc:doc"))

	data, err := s.Load(ctx, "doc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(data))

	assert.NoError(t, s.Ping(ctx))
}

func TestStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedis(t)
	mr.Close()

	assert.Error(t, s.Ping(ctx))
	assert.Error(t, s.Save(ctx, "doc", []byte("{}")))
	_, err := s.Load(ctx, "doc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestDial_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = Dial(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

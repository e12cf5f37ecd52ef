package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgram/files"
	"tgram/storage"
	"tgram/types"
	gormutil "tgram/util/gorm"
)

type store interface {
	files.Cache
	LoadOffset(ctx context.Context, bot string) (types.ID, error)
	SaveOffset(ctx context.Context, bot string, offset types.ID) error
}

func getContext() (context.Context, func()) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func testStore(ctx context.Context, t *testing.T, s store) {
	id, ok, err := s.GetFileID(ctx, "sha256:abc")
	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Empty(t, id)

	assert.Nil(t, s.SetFileID(ctx, "sha256:abc", "first"))
	assert.Nil(t, s.SetFileID(ctx, "sha256:abc", "second"))
	id, ok, err = s.GetFileID(ctx, "sha256:abc")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.FileID("second"), id)

	offset, err := s.LoadOffset(ctx, "test_bot")
	assert.Nil(t, err)
	assert.Equal(t, types.ID(0), offset)

	assert.Nil(t, s.SaveOffset(ctx, "test_bot", 100))
	assert.Nil(t, s.SaveOffset(ctx, "test_bot", 101))
	assert.Nil(t, s.SaveOffset(ctx, "other_bot", 5))
	offset, err = s.LoadOffset(ctx, "test_bot")
	assert.Nil(t, err)
	assert.Equal(t, types.ID(101), offset)
}

func TestRedis(t *testing.T) {
	ctx, cancel := getContext()
	defer cancel()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	s := storage.NewRedis(client, "", time.Hour)
	defer s.Close()

	testStore(ctx, t, s)

	assert.True(t, server.Exists("tgram:file:sha256:abc"))
	assert.Equal(t, time.Hour, server.TTL("tgram:file:sha256:abc"))
	assert.Equal(t, time.Duration(0), server.TTL("tgram:offset:test_bot"))

	server.FastForward(2 * time.Hour)
	_, ok, err := s.GetFileID(ctx, "sha256:abc")
	assert.Nil(t, err)
	assert.False(t, ok)
}

func TestSQL(t *testing.T) {
	db := gormutil.NewTestDatabase(t)
	defer db.Close()

	ctx, cancel := getContext()
	defer cancel()

	now, err := time.Parse(time.RFC3339, "2024-03-01T12:00:00Z")
	require.Nil(t, err)

	s := storage.NewSQL(db.DB, time.Hour)
	s.Now = func() time.Time { return now }
	require.Nil(t, s.Init(ctx))

	testStore(ctx, t, s)

	now = now.Add(2 * time.Hour)
	_, ok, err := s.GetFileID(ctx, "sha256:abc")
	assert.Nil(t, err)
	assert.False(t, ok)

	deleted, err := s.Expire(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), deleted)
}

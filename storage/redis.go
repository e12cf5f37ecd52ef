package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"tgram/types"
)

// Redis keeps file IDs as "<prefix>:file:<key>" with expiration
// and offsets as "<prefix>:offset:<bot>".
type Redis struct {
	Client redis.UniversalClient
	Prefix string
	TTL    time.Duration
}

// NewRedis creates the storage. An empty prefix defaults to "tgram".
func NewRedis(client redis.UniversalClient, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = "tgram"
	}

	return &Redis{Client: client, Prefix: prefix, TTL: ttl}
}

func (r *Redis) fileKey(key string) string {
	return fmt.Sprintf("%s:file:%s", r.Prefix, key)
}

func (r *Redis) offsetKey(bot string) string {
	return fmt.Sprintf("%s:offset:%s", r.Prefix, bot)
}

func (r *Redis) GetFileID(ctx context.Context, key string) (types.FileID, bool, error) {
	id, err := r.Client.Get(ctx, r.fileKey(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false, nil
	case err != nil:
		return "", false, err
	default:
		return types.FileID(id), true, nil
	}
}

func (r *Redis) SetFileID(ctx context.Context, key string, id types.FileID) error {
	return r.Client.Set(ctx, r.fileKey(key), string(id), r.TTL).Err()
}

func (r *Redis) LoadOffset(ctx context.Context, bot string) (types.ID, error) {
	offset, err := r.Client.Get(ctx, r.offsetKey(bot)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, nil
	case err != nil:
		return 0, err
	default:
		return types.ID(offset), nil
	}
}

func (r *Redis) SaveOffset(ctx context.Context, bot string, offset types.ID) error {
	return r.Client.Set(ctx, r.offsetKey(bot), int64(offset), 0).Err()
}

func (r *Redis) Close() error {
	return r.Client.Close()
}

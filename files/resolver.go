// Package files resolves local files for upload and remembers the file IDs
// assigned to uploaded contents.
package files

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"tgram/types"
)

// Cache stores file IDs by content key.
type Cache interface {
	GetFileID(ctx context.Context, key string) (types.FileID, bool, error)
	SetFileID(ctx context.Context, key string, id types.FileID) error
}

// CacheKey returns the key identifying upload contents.
// Local files are keyed by path, size and modification time, in-memory contents by SHA-256.
// Streams and remote references are not cacheable.
func CacheKey(file types.InputFile) (string, bool, error) {
	switch file := file.(type) {
	case types.FilePath:
		path, err := filepath.Abs(string(file))
		if err != nil {
			return "", false, errors.Wrap(err, "abs")
		}

		info, err := os.Stat(path)
		if err != nil {
			return "", false, errors.Wrap(err, "stat")
		}

		return fmt.Sprintf("path:%s:%d:%d", path, info.Size(), info.ModTime().UnixNano()), true, nil
	case types.FileBytes:
		hash := sha256.Sum256(file.Data)
		return "sha256:" + hex.EncodeToString(hash[:]), true, nil
	default:
		return "", false, nil
	}
}

// Resolver opens local files for upload. With a Cache set, previously uploaded
// contents are replaced with their file IDs.
type Resolver struct {
	Cache Cache
	Log   logrus.FieldLogger
}

func (r *Resolver) Resolve(ctx context.Context, file types.InputFile) (types.InputFile, error) {
	if !types.IsUpload(file) {
		return file, nil
	}

	if r.Cache != nil {
		key, ok, err := CacheKey(file)
		if err != nil {
			return nil, err
		}

		if ok {
			id, ok, err := r.Cache.GetFileID(ctx, key)
			switch {
			case err != nil:
				r.warnf("get file id for %s: %v", key, err)
			case ok:
				return id, nil
			}
		}
	}

	if path, ok := file.(types.FilePath); ok {
		reader, err := os.Open(string(path))
		if err != nil {
			return nil, errors.Wrap(err, "open file")
		}

		return &types.FileReader{Name: filepath.Base(string(path)), Reader: reader}, nil
	}

	return file, nil
}

// Remember stores the file ID assigned to uploaded contents. Files without a cache key are ignored.
func (r *Resolver) Remember(ctx context.Context, file types.InputFile, id types.FileID) error {
	if r.Cache == nil || id == "" {
		return nil
	}

	key, ok, err := CacheKey(file)
	if err != nil || !ok {
		return err
	}

	return r.Cache.SetFileID(ctx, key, id)
}

func (r *Resolver) warnf(format string, args ...interface{}) {
	if r.Log != nil {
		r.Log.Warnf(format, args...)
	}
}

// Memory is an in-process Cache.
type Memory struct {
	ids sync.Map
}

func (m *Memory) GetFileID(_ context.Context, key string) (types.FileID, bool, error) {
	if id, ok := m.ids.Load(key); ok {
		return id.(types.FileID), true, nil
	}

	return "", false, nil
}

func (m *Memory) SetFileID(_ context.Context, key string, id types.FileID) error {
	m.ids.Store(key, id)
	return nil
}

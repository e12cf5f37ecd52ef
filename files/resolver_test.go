package files_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgram/files"
	"tgram/types"
)

func TestResolver(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "video.mp4")
	require.Nil(t, os.WriteFile(path, []byte("mp4"), 0644))

	resolver := &files.Resolver{Cache: new(files.Memory)}
	file, err := resolver.Resolve(ctx, types.FilePath(path))
	require.Nil(t, err)
	reader, ok := file.(*types.FileReader)
	require.True(t, ok)
	assert.Equal(t, "video.mp4", reader.Name)
	data, err := io.ReadAll(reader.Reader)
	require.Nil(t, err)
	assert.Equal(t, "mp4", string(data))
	_ = reader.Reader.(io.Closer).Close()

	require.Nil(t, resolver.Remember(ctx, types.FilePath(path), "uploaded"))
	file, err = resolver.Resolve(ctx, types.FilePath(path))
	require.Nil(t, err)
	assert.Equal(t, types.FileID("uploaded"), file)

	// remote references pass through
	file, err = resolver.Resolve(ctx, types.FileURL("https://example.com/a.jpg"))
	require.Nil(t, err)
	assert.Equal(t, types.FileURL("https://example.com/a.jpg"), file)
}

func TestResolver_Bytes(t *testing.T) {
	ctx := context.Background()
	resolver := &files.Resolver{Cache: new(files.Memory)}
	contents := types.FileBytes{Name: "a.txt", Data: []byte("hello")}

	file, err := resolver.Resolve(ctx, contents)
	require.Nil(t, err)
	assert.Equal(t, contents, file)

	require.Nil(t, resolver.Remember(ctx, types.FileBytes{Name: "b.txt", Data: []byte("hello")}, "same"))
	file, err = resolver.Resolve(ctx, contents)
	require.Nil(t, err)
	assert.Equal(t, types.FileID("same"), file)
}

func TestResolver_Missing(t *testing.T) {
	resolver := new(files.Resolver)
	_, err := resolver.Resolve(context.Background(), types.FilePath("/definitely/missing"))
	assert.NotNil(t, err)
}

func TestCacheKey(t *testing.T) {
	key, ok, err := files.CacheKey(types.FileBytes{Data: []byte("hello")})
	require.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", key)

	_, ok, err = files.CacheKey(types.FileID("x"))
	require.Nil(t, err)
	assert.False(t, ok)
}

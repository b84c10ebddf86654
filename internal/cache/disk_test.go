package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"asmodeus/internal/diag"
	"asmodeus/internal/source"
)

func TestDiskCachePutGet(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)

	key := CacheKey([32]byte{1, 2, 3}, "salt")
	var out DiskPayload
	hit, err := c.Get(key, &out)
	require.NoError(t, err)
	require.False(t, hit)

	ds := []diag.Diagnostic{diag.NewError(diag.SemUnknownInstruction, source.NewSpan(3, 4, 7), "Unknown instruction: 'DOX'")}
	require.NoError(t, c.Put(key, &DiskPayload{Path: "a.asmod", Diagnostics: ToCached(ds)}))

	hit, err = c.Get(key, &out)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "a.asmod", out.Path)
	require.Equal(t, ds, FromCached(out.Diagnostics))

	require.NoError(t, c.DropAll())
	hit, err = c.Get(key, &out)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestCacheKeyDependsOnSalt(t *testing.T) {
	h := [32]byte{9}
	require.NotEqual(t, CacheKey(h, "a"), CacheKey(h, "b"))
	require.Equal(t, CacheKey(h, "a"), CacheKey(h, "a"))
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *DiskCache
	require.NoError(t, c.Put(Digest{}, &DiskPayload{}))
	hit, err := c.Get(Digest{}, &DiskPayload{})
	require.NoError(t, err)
	require.False(t, hit)
}

package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis_Connects(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Cleanup(func() { _ = Close() })

	InitRedis(mr.Addr())
	require.NotNil(t, GetClient())
	assert.NoError(t, GetClient().Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestInitRedis_URLForm(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Cleanup(func() { _ = Close() })

	InitRedis("redis://" + mr.Addr() + "/0")
	assert.NotNil(t, GetClient())
}

func TestInitRedis_UnreachableLeavesNilClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	InitRedis(addr)
	assert.Nil(t, GetClient())
}

func TestInitRedis_InvalidURL(t *testing.T) {
	InitRedis("redis://%zz")
	assert.Nil(t, GetClient())
}

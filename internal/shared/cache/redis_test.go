package cache

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyAddrBypassesCache(t *testing.T) {
	c := NewRedis("", "", 0)

	assert.False(t, c.Enabled())
	var out string
	found, err := c.GetJSON(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.SetJSON(context.Background(), "k", "v", time.Minute))
	assert.Error(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Redis

	found, err := c.GetJSON(context.Background(), "k", &struct{}{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.SetJSON(context.Background(), "k", 1, 0))
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestUnreachableServerWarnsOnce(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisFromClient(client, time.Minute)
	defer c.Close()

	var err1, err2 error
	out := captureStdout(t, func() {
		var v string
		_, err1 = c.GetJSON(context.Background(), "a", &v)
		err2 = c.SetJSON(context.Background(), "a", "b", 0)
	})

	assert.Error(t, err1)
	assert.Error(t, err2)
	assert.Equal(t, 1, strings.Count(out, `"msg":"cache.unavailable"`))
	assert.Contains(t, out, `"level":"warn"`)
}

func TestFailedPingBypassesAndLogsJSON(t *testing.T) {
	var c *Redis
	out := captureStdout(t, func() {
		c = NewRedis("127.0.0.1:1", "", time.Minute)
	})

	assert.False(t, c.Enabled())
	assert.Contains(t, out, `"msg":"cache.unavailable"`)
	assert.Contains(t, out, `"addr":"127.0.0.1:1"`)
}

func TestExtractedTextKey(t *testing.T) {
	assert.Equal(t, "resume:text:abc", ExtractedTextKey("abc"))
}

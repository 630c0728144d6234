//go:build integration

package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"astrocards/internal/adapters/cache"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupValkeyContainer starts a Valkey server and returns its address.
func setupValkeyContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "valkey/valkey:8-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start valkey container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

func newValkeyCache(t *testing.T) *cache.ValkeyCache {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.Dial(ctx, setupValkeyContainer(t))
	require.NoError(t, err)

	c := cache.NewValkeyCache(client, "astro-test")
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestIntegration_ValkeyCache_SetAndGet(t *testing.T) {
	c := newValkeyCache(t)
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second).UTC()

	require.NoError(t, c.Set(ctx, "Seattle", "2026-10-16", entry("Seattle", expiresAt)))
	got, found, err := c.Get(ctx, " SEATTLE", "2026-10-16")

	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Seattle", got.Record.Name)
	require.True(t, got.ExpiresAt.Equal(expiresAt))
}

func TestIntegration_ValkeyCache_Miss(t *testing.T) {
	c := newValkeyCache(t)

	got, found, err := c.Get(context.Background(), "Atlantis", "2026-10-16")

	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, got)
}

func TestIntegration_ValkeyCache_ServerSideExpiry(t *testing.T) {
	c := newValkeyCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "Oslo", "2026-10-16", entry("Oslo", time.Now().Add(2*time.Second))))
	_, found, err := c.Get(ctx, "Oslo", "2026-10-16")
	require.NoError(t, err)
	require.True(t, found)

	require.Eventually(t, func() bool {
		_, found, err := c.Get(ctx, "Oslo", "2026-10-16")
		return err == nil && !found
	}, 10*time.Second, 200*time.Millisecond)
}

func TestIntegration_ValkeyCache_ExpiredByClock(t *testing.T) {
	c := newValkeyCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "Lima", "2026-10-16", entry("Lima", time.Now().Add(time.Hour))))

	c.SetClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
	_, found, err := c.Get(ctx, "Lima", "2026-10-16")

	require.NoError(t, err)
	require.False(t, found)
}

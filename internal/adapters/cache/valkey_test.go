package cache_test

import (
	"testing"

	"astrocards/internal/adapters/cache"

	"github.com/stretchr/testify/require"
)

func TestClientOption_PlainAddress(t *testing.T) {
	opt, err := cache.ClientOption("localhost:6379")

	require.NoError(t, err)
	require.Equal(t, []string{"localhost:6379"}, opt.InitAddress)
}

func TestClientOption_URL(t *testing.T) {
	opt, err := cache.ClientOption("redis://valkey.internal:6380/2")

	require.NoError(t, err)
	require.Equal(t, []string{"valkey.internal:6380"}, opt.InitAddress)
	require.Equal(t, 2, opt.SelectDB)
}

func TestClientOption_BadURL(t *testing.T) {
	_, err := cache.ClientOption("redis://[::1")

	require.Error(t, err)
}

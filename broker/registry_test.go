package broker_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brokermux/brokermux/broker"
	"github.com/brokermux/brokermux/core"
	"github.com/brokermux/brokermux/plugins/memory"
)

func TestCreate_Registered(t *testing.T) {
	broker.Register("test-memory", func(cfg broker.Config) (core.Transport, error) {
		return memory.New(), nil
	})

	tr, err := broker.Create("test-memory", broker.Config{})
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.NoError(t, tr.Close())
}

func TestCreate_Unknown(t *testing.T) {
	_, err := broker.Create("no-such-transport", broker.Config{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown transport")
}

func TestCreate_MemoryPlugin(t *testing.T) {
	// Registered by the plugin's init.
	tr, err := broker.Create("memory", broker.Config{})
	require.NoError(t, err)
	require.NoError(t, tr.Close())
}

package dockerengine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestOwnNetworkWithoutHostnameSkipsContainerInspect exercises the one branch
// of ownNetwork reachable without a real engine connection: when HOSTNAME
// isn't set (or doesn't resolve to a container, which looks identical from
// here), it returns before ever touching c.api, so a zero-value Client is
// safe to call this on.
func TestOwnNetworkWithoutHostnameSkipsContainerInspect(t *testing.T) {
	t.Setenv("HOSTNAME", "")

	c := &Client{}
	name, err := c.ownNetwork(context.Background())
	require.NoError(t, err)
	require.Empty(t, name)
}

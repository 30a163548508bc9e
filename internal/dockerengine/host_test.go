package dockerengine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetermineDockerHostPrefersDockerHostEnv(t *testing.T) {
	t.Setenv("DOCKER_HOST", "tcp://192.0.2.1:2375")
	t.Setenv("DOCKER_CONTEXT", "")

	host, err := determineDockerHost()
	require.NoError(t, err)
	require.Equal(t, "tcp://192.0.2.1:2375", host)
}

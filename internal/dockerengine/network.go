package dockerengine

import (
	"context"
	"os"
)

// ownNetwork reports a user-defined bridge network the current process's
// own container (if any) is attached to, so sibling containers this
// process creates can reach the sidecar by container name instead of a
// published host port. Returns "" (no error) when the process isn't
// running in a container, or is only on the default bridge.
func (c *Client) ownNetwork(ctx context.Context) (string, error) {
	selfID := os.Getenv("HOSTNAME")
	if selfID == "" {
		return "", nil
	}

	info, err := c.api.ContainerInspect(ctx, selfID)
	if err != nil {
		// HOSTNAME not resolving to a real container (bare-metal dev
		// environment, or a non-Docker container runtime) isn't an error.
		if isContainerNotFoundError(err) {
			return "", nil
		}
		return "", err
	}

	if info.NetworkSettings == nil {
		return "", nil
	}

	for name := range info.NetworkSettings.Networks {
		if name != "bridge" && name != "host" && name != "none" {
			return name, nil
		}
	}

	return "", nil
}

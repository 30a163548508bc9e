package dockerengine

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/client"
)

// Ping confirms the engine at the resolved host answers within duration.
// It's used on its own (outside the shared Client) so callers can surface
// a clear EngineConnectError before committing to anything stateful.
func Ping(ctx context.Context, duration time.Duration) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create docker client: %w", err)
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	if _, err := cli.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach the docker engine, is the daemon running: %w", err)
	}

	return nil
}

package dockerengine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/bosun-ai/swiftide-docker-executor/internal/sidecarproto"
)

// Logs copies ctr's combined stdout/stderr, demultiplexing the engine's
// framed log stream the way `docker logs` does for a non-TTY container.
func (c *Client) Logs(ctx context.Context, containerID string, w io.Writer) error {
	logs, err := c.api.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		if isContainerNotFoundError(err) {
			return &NotFoundError{Ref: containerID, Object: "container"}
		}
		return fmt.Errorf("getting logs for container %s: %w", containerID, err)
	}
	defer logs.Close()

	if _, err := stdcopy.StdCopy(w, w, logs); err != nil {
		return fmt.Errorf("copying logs for container %s: %w", containerID, err)
	}
	return nil
}

// TailLogs returns up to the last maxBytes of combined stdout/stderr,
// collected for a StartupTimeoutError's log tail.
func (c *Client) TailLogs(ctx context.Context, containerID string, maxBytes int) (string, error) {
	var buf bytes.Buffer
	if err := c.Logs(ctx, containerID, &buf); err != nil {
		return "", err
	}
	out := buf.String()
	if len(out) > maxBytes {
		out = out[len(out)-maxBytes:]
	}
	return out, nil
}

// WaitForSidecar polls addr with exponential backoff until a gRPC
// connection can be established and a trivial Exec("true") round-trips,
// or ctx is done. The backoff parameters mirror a typical dial-retry
// configuration: a short initial delay that doubles up to a 1s ceiling,
// so a sidecar that's merely slow to bind its listener doesn't spend the
// whole timeout sleeping between attempts.
func WaitForSidecar(ctx context.Context, addr string) error {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff: backoff.Config{
				BaseDelay:  50 * time.Millisecond,
				Multiplier: 2,
				MaxDelay:   time.Second,
			},
			MinConnectTimeout: 100 * time.Millisecond,
		}),
	)
	if err != nil {
		return fmt.Errorf("dialing sidecar at %s: %w", addr, err)
	}
	defer conn.Close()

	client := sidecarproto.NewShellServiceClient(conn)

	var lastErr error
	for {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("sidecar at %s never became ready: %w", addr, lastErr)
			}
			return ctx.Err()
		default:
		}

		stream, err := client.Exec(ctx, &sidecarproto.ShellRequest{Command: "true"})
		if err == nil {
			for {
				_, err = stream.Recv()
				if err != nil {
					break
				}
			}
			if err == io.EOF {
				return nil
			}
		}
		lastErr = err
		time.Sleep(50 * time.Millisecond)
	}
}

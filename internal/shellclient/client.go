// Package shellclient wraps internal/sidecarproto.ShellServiceClient with
// the directory-resolution, timeout, and partial-output-on-timeout
// semantics a shell command inside an executor container needs.
package shellclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/bosun-ai/swiftide-docker-executor/internal/sidecarproto"
	"github.com/bosun-ai/swiftide-docker-executor/internal/tracelog"
)

// Command is a single shell invocation.
type Command struct {
	Shell string
	// CurrentDir is resolved against Workdir: empty means Workdir itself,
	// a relative path is joined onto it, an absolute path is used as-is.
	CurrentDir string
	// Timeout, if zero, falls back to the client's DefaultTimeout; if
	// that's also zero, the command runs with no deadline beyond ctx's.
	Timeout time.Duration
}

// Output is the result of a completed or timed-out command. ExitCode is
// only meaningful when TimedOut is false.
type Output struct {
	ExitCode int32
	Stdout   string
	Stderr   string
	TimedOut bool
}

// TimedOutError is returned when a command's timeout fires before the
// sidecar reports completion; Partial carries whatever output had
// already arrived.
type TimedOutError struct {
	Partial Output
}

func (e *TimedOutError) Error() string {
	return fmt.Sprintf("command timed out after partial output (%d bytes stdout, %d bytes stderr)",
		len(e.Partial.Stdout), len(e.Partial.Stderr))
}

// RPCError wraps a gRPC failure that isn't a timeout (connection drop,
// sidecar panic, malformed stream).
type RPCError struct {
	Err error
}

func (e *RPCError) Error() string { return fmt.Sprintf("shell rpc error: %v", e.Err) }
func (e *RPCError) Unwrap() error { return e.Err }

// Client issues Exec calls against one container's sidecar.
type Client struct {
	conn           *grpc.ClientConn
	svc            sidecarproto.ShellServiceClient
	workdir        string
	defaultTimeout time.Duration
	containerID    string
	trace          *tracelog.Logger
}

// Dial opens a gRPC connection to the sidecar's shell service at addr.
func Dial(addr, workdir, containerID string, defaultTimeout time.Duration, trace *tracelog.Logger) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dialing shell service at %s: %w", addr, err)
	}
	return &Client{
		conn:           conn,
		svc:            sidecarproto.NewShellServiceClient(conn),
		workdir:        workdir,
		defaultTimeout: defaultTimeout,
		containerID:    containerID,
		trace:          trace,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Exec resolves cmd's working directory, applies the effective timeout,
// and streams the sidecar's output to completion or timeout.
func (c *Client) Exec(ctx context.Context, cmd Command) (Output, error) {
	dir := c.resolveDir(cmd.CurrentDir)
	shell := fmt.Sprintf("cd %s && %s", shellQuote(dir), cmd.Shell)

	timeout := cmd.Timeout
	if timeout == 0 {
		timeout = c.defaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	stream, err := c.svc.Exec(ctx, &sidecarproto.ShellRequest{Command: shell})
	if err != nil {
		return Output{}, &RPCError{Err: err}
	}

	var out Output
	var stdout, stderr strings.Builder

	for {
		chunk, err := stream.Recv()
		if err != nil {
			if ctx.Err() != nil {
				out.Stdout, out.Stderr, out.TimedOut = stdout.String(), stderr.String(), true
				return out, &TimedOutError{Partial: out}
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return out, &RPCError{Err: err}
		}

		switch chunk.GetStream() {
		case sidecarproto.ShellResponse_STDOUT:
			stdout.Write(chunk.GetData())
			c.trace.Debug(c.containerID, "stdout: %s", chunk.GetData())
		case sidecarproto.ShellResponse_STDERR:
			stderr.Write(chunk.GetData())
			c.trace.Debug(c.containerID, "stderr: %s", chunk.GetData())
		}

		if chunk.GetDone() {
			out.ExitCode = chunk.GetExitCode()
			break
		}
	}

	out.Stdout = stdout.String()
	out.Stderr = stderr.String()
	return out, nil
}

func (c *Client) resolveDir(dir string) string {
	if dir == "" {
		return c.workdir
	}
	if path.IsAbs(dir) {
		return dir
	}
	return path.Join(c.workdir, dir)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

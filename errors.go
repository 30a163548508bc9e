package executor

import (
	"errors"
	"fmt"
)

// ContextBuildError wraps a failure packing the build context at Path
// (reading the project tree, compiling ignore patterns, writing the tar).
type ContextBuildError struct {
	Path string
	Err  error
}

func (e *ContextBuildError) Error() string {
	return fmt.Sprintf("packing build context at %s: %v", e.Path, e.Err)
}
func (e *ContextBuildError) Unwrap() error { return e.Err }

// ImageBuildError wraps a failed image build. Log carries whatever build
// output had been collected before the failure, classic-backend only
// (BuildKit's status events go to the trace logger instead).
type ImageBuildError struct {
	Log []string
	Err error
}

func (e *ImageBuildError) Error() string { return fmt.Sprintf("building image: %v", e.Err) }
func (e *ImageBuildError) Unwrap() error  { return e.Err }

// ImagePullError wraps a failed pull of a pre-existing image (WithSkipBuild).
type ImagePullError struct {
	Err error
}

func (e *ImagePullError) Error() string { return fmt.Sprintf("pulling image: %v", e.Err) }
func (e *ImagePullError) Unwrap() error  { return e.Err }

// StartupError reports that a created container never became reachable:
// Probe is the last dial/handshake error, LogTail the container's trailing
// output at the time it was torn down.
type StartupError struct {
	Probe   error
	LogTail string
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("container did not become ready: %v\n--- log tail ---\n%s", e.Probe, e.LogTail)
}
func (e *StartupError) Unwrap() error { return e.Probe }

// StartupTimeoutError is a StartupError specifically caused by the overall
// readiness deadline elapsing, rather than a connection being refused
// outright. errors.As(err, &(*StartupError)(nil)) still matches it.
type StartupTimeoutError struct {
	StartupError
}

func (e *StartupTimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for container to become ready: %v\n--- log tail ---\n%s",
		e.Probe, e.LogTail)
}

// Unwrap returns the embedded *StartupError rather than delegating to its
// Unwrap (which would skip straight to Probe), so errors.As(err,
// &(*StartupError)(nil)) matches a *StartupTimeoutError too.
func (e *StartupTimeoutError) Unwrap() error { return &e.StartupError }

// RPCError wraps a gRPC failure surfaced by either sidecar client, with no
// further classification (connection drop, malformed stream, sidecar
// panic).
type RPCError struct {
	Err error
}

func (e *RPCError) Error() string { return fmt.Sprintf("sidecar rpc error: %v", e.Err) }
func (e *RPCError) Unwrap() error { return e.Err }

// TimedOutError is returned when a Command's timeout fires before the
// sidecar reports completion. Partial carries whatever output had already
// arrived before the deadline.
type TimedOutError struct {
	Partial CommandOutput
}

func (e *TimedOutError) Error() string {
	return fmt.Sprintf("command timed out after partial output (%d bytes stdout, %d bytes stderr)",
		len(e.Partial.Stdout), len(e.Partial.Stderr))
}

// ErrAlreadyStarted is returned by a second call to Executor.Start; the
// RunningExecutor returned by the first call is unaffected.
var ErrAlreadyStarted = errors.New("executor: already started")

// ErrNotStarted is returned by operations that require a RunningExecutor
// when called against one that has already been closed.
var ErrNotStarted = errors.New("executor: not started")

// EngineConnectError wraps a failure to reach or negotiate with the Docker
// Engine itself, as distinct from a failure of a specific build or
// container operation against it.
type EngineConnectError struct {
	Err error
}

func (e *EngineConnectError) Error() string { return fmt.Sprintf("docker engine unreachable: %v", e.Err) }
func (e *EngineConnectError) Unwrap() error { return e.Err }

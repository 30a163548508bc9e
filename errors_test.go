package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartupTimeoutErrorUnwrapsToStartupError(t *testing.T) {
	probe := errors.New("dial tcp: connect: connection refused")
	err := &StartupTimeoutError{StartupError: StartupError{Probe: probe, LogTail: "booting..."}}

	var startup *StartupError
	require.True(t, errors.As(err, &startup))
	require.Equal(t, "booting...", startup.LogTail)

	require.True(t, errors.Is(err, probe))
}

func TestContextBuildErrorUnwraps(t *testing.T) {
	inner := errors.New("no such file")
	err := &ContextBuildError{Path: "/src/Dockerfile", Err: inner}

	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "/src/Dockerfile")
}

func TestImageBuildErrorCarriesLog(t *testing.T) {
	inner := errors.New("step 3/5 failed")
	err := &ImageBuildError{Log: []string{"step 1", "step 2"}, Err: inner}

	require.ErrorIs(t, err, inner)
	require.Equal(t, []string{"step 1", "step 2"}, err.Log)
}

func TestRPCErrorAndEngineConnectErrorUnwrap(t *testing.T) {
	inner := errors.New("transport is closing")

	rpcErr := &RPCError{Err: inner}
	require.ErrorIs(t, rpcErr, inner)

	engineErr := &EngineConnectError{Err: inner}
	require.ErrorIs(t, engineErr, inner)
}

func TestTimedOutErrorReportsPartialOutputSizes(t *testing.T) {
	err := &TimedOutError{Partial: CommandOutput{Stdout: "hello", Stderr: "oops"}}
	require.Contains(t, err.Error(), "5 bytes stdout")
	require.Contains(t, err.Error(), "4 bytes stderr")
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(ErrAlreadyStarted, ErrNotStarted))
}

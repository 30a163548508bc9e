package shellclient

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/bosun-ai/swiftide-docker-executor/internal/sidecarproto"
	"github.com/bosun-ai/swiftide-docker-executor/internal/tracelog"
)

// fakeShellServer drives canned responses, or blocks until released, so
// both the happy path and the timeout/partial-output path can be
// exercised without a real sidecar.
type fakeShellServer struct {
	sidecarproto.UnimplementedShellServiceServer
	responses []*sidecarproto.ShellResponse
	block     chan struct{}
	lastCmd   string
}

func (f *fakeShellServer) Exec(req *sidecarproto.ShellRequest, stream sidecarproto.ShellService_ExecServer) error {
	f.lastCmd = req.GetCommand()
	for _, r := range f.responses {
		if err := stream.Send(r); err != nil {
			return err
		}
	}
	if f.block != nil {
		<-f.block
	}
	return nil
}

func startFakeShell(t *testing.T, srv *fakeShellServer) (addr string, stop func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	gs := grpc.NewServer()
	sidecarproto.RegisterShellServiceServer(gs, srv)
	go gs.Serve(lis)

	return lis.Addr().String(), func() {
		gs.Stop()
		lis.Close()
	}
}

func TestExecDemuxesStdoutAndStderrAndReportsExitCode(t *testing.T) {
	srv := &fakeShellServer{responses: []*sidecarproto.ShellResponse{
		{Stream: sidecarproto.ShellResponse_STDOUT, Data: []byte("out1")},
		{Stream: sidecarproto.ShellResponse_STDERR, Data: []byte("err1")},
		{Stream: sidecarproto.ShellResponse_STDOUT, Data: []byte("out2"), Done: true, ExitCode: 7},
	}}
	addr, stop := startFakeShell(t, srv)
	defer stop()

	c, err := Dial(addr, "/app", "ctr1", time.Minute, tracelog.New())
	require.NoError(t, err)
	defer c.Close()

	out, err := c.Exec(context.Background(), Command{Shell: "echo hi"})
	require.NoError(t, err)
	require.Equal(t, "out1out2", out.Stdout)
	require.Equal(t, "err1", out.Stderr)
	require.EqualValues(t, 7, out.ExitCode)
	require.False(t, out.TimedOut)
}

func TestExecResolvesCurrentDirAgainstWorkdir(t *testing.T) {
	srv := &fakeShellServer{responses: []*sidecarproto.ShellResponse{
		{Done: true},
	}}
	addr, stop := startFakeShell(t, srv)
	defer stop()

	c, err := Dial(addr, "/app", "ctr1", time.Minute, tracelog.New())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Exec(context.Background(), Command{Shell: "ls", CurrentDir: "sub"})
	require.NoError(t, err)
	require.Equal(t, "cd '/app/sub' && ls", srv.lastCmd)

	_, err = c.Exec(context.Background(), Command{Shell: "ls", CurrentDir: "/abs"})
	require.NoError(t, err)
	require.Equal(t, "cd '/abs' && ls", srv.lastCmd)

	_, err = c.Exec(context.Background(), Command{Shell: "ls"})
	require.NoError(t, err)
	require.Equal(t, "cd '/app' && ls", srv.lastCmd)
}

func TestExecReturnsTimedOutErrorWithPartialOutput(t *testing.T) {
	srv := &fakeShellServer{
		responses: []*sidecarproto.ShellResponse{
			{Stream: sidecarproto.ShellResponse_STDOUT, Data: []byte("partial")},
		},
		block: make(chan struct{}),
	}
	addr, stop := startFakeShell(t, srv)
	defer stop()
	defer close(srv.block)

	c, err := Dial(addr, "/app", "ctr1", time.Minute, tracelog.New())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Exec(context.Background(), Command{Shell: "sleep 5", Timeout: 50 * time.Millisecond})
	require.Error(t, err)

	var timedOut *TimedOutError
	require.ErrorAs(t, err, &timedOut)
	require.Equal(t, "partial", timedOut.Partial.Stdout)
	require.True(t, timedOut.Partial.TimedOut)
}

func TestDialFailureSurfacesAsRPCError(t *testing.T) {
	c, err := Dial("127.0.0.1:1", "/app", "ctr1", time.Minute, tracelog.New())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Exec(context.Background(), Command{Shell: "true"})
	require.Error(t, err)

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
}

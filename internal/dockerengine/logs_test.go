package dockerengine

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/bosun-ai/swiftide-docker-executor/internal/sidecarproto"
)

type readyShellServer struct {
	sidecarproto.UnimplementedShellServiceServer
}

func (readyShellServer) Exec(req *sidecarproto.ShellRequest, stream sidecarproto.ShellService_ExecServer) error {
	return stream.Send(&sidecarproto.ShellResponse{Done: true, ExitCode: 0})
}

func TestWaitForSidecarSucceedsOnceServerAnswers(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	gs := grpc.NewServer()
	sidecarproto.RegisterShellServiceServer(gs, readyShellServer{})
	go gs.Serve(lis)
	defer gs.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, WaitForSidecar(ctx, lis.Addr().String()))
}

func TestWaitForSidecarGivesUpWhenContextExpires(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := WaitForSidecar(ctx, "127.0.0.1:1")
	require.Error(t, err)
}
